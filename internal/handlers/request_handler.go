package handlers

import (
	"pmp/internal/middleware"
	"pmp/internal/services"
	"pmp/pkg/pagination"
	"pmp/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequestHandler 住户申请的后台处理接口
type RequestHandler struct {
	requestService *services.RequestService
}

func NewRequestHandler(requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// List 申请列表，可按状态过滤
func (h *RequestHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	requests, total, err := h.requestService.List(middleware.GetScope(c), c.Query("status"),
		params.GetOffset(), params.GetLimit())
	if err != nil {
		response.ServerError(c, "查询申请列表失败")
		return
	}

	response.SuccessWithPage(c, requests, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// Get 申请详情
func (h *RequestHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	request, err := h.requestService.GetByID(middleware.GetScope(c), id)
	if err != nil {
		response.NotFound(c, "申请不存在")
		return
	}

	response.Success(c, request)
}

// Acknowledge 确认申请（未读计数随之减少）
func (h *RequestHandler) Acknowledge(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	request, err := h.requestService.Acknowledge(middleware.GetScope(c), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "申请不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "已确认", request)
}

// Resolve 办结申请
func (h *RequestHandler) Resolve(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	request, err := h.requestService.Resolve(middleware.GetScope(c), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "申请不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "已办结", request)
}

// UnreadCount 未确认申请数（导航角标）
func (h *RequestHandler) UnreadCount(c *gin.Context) {
	count, err := h.requestService.UnreadCount(middleware.GetScope(c))
	if err != nil {
		response.ServerError(c, "查询未读申请数失败")
		return
	}

	response.Success(c, gin.H{"unread": count})
}

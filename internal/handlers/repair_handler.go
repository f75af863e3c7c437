package handlers

import (
	"pmp/internal/middleware"
	"pmp/internal/services"
	"pmp/pkg/pagination"
	"pmp/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RepairHandler struct {
	repairService *services.RepairService
}

func NewRepairHandler(repairService *services.RepairService) *RepairHandler {
	return &RepairHandler{repairService: repairService}
}

type RepairRequest struct {
	RoomID      *uint  `json:"room_id"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Cost        int64  `json:"cost" binding:"gte=0"`
	IsUrgent    bool   `json:"is_urgent"`
}

// Create 创建维修记录
func (h *RepairHandler) Create(c *gin.Context) {
	var req RepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	repair, err := h.repairService.Create(middleware.GetScope(c), &services.RepairInput{
		RoomID:      req.RoomID,
		Title:       req.Title,
		Description: req.Description,
		Cost:        req.Cost,
		IsUrgent:    req.IsUrgent,
	})
	if err != nil {
		writeWriteError(c, err)
		return
	}

	response.SuccessWithMessage(c, "创建成功", repair)
}

// List 维修列表，可按状态过滤
func (h *RepairHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	repairs, total, err := h.repairService.List(middleware.GetScope(c), c.Query("status"),
		params.GetOffset(), params.GetLimit())
	if err != nil {
		response.ServerError(c, "查询维修列表失败")
		return
	}

	response.SuccessWithPage(c, repairs, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// Get 维修详情
func (h *RepairHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	repair, err := h.repairService.GetByID(middleware.GetScope(c), id)
	if err != nil {
		response.NotFound(c, "维修记录不存在")
		return
	}

	response.Success(c, repair)
}

type RepairStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Cost   *int64 `json:"cost"`
}

// UpdateStatus 更新维修状态与费用
func (h *RepairHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req RepairStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	repair, err := h.repairService.UpdateStatus(middleware.GetScope(c), id, req.Status, req.Cost)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "维修记录不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "更新成功", repair)
}

// Delete 删除维修记录
func (h *RepairHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	if err := h.repairService.Delete(middleware.GetScope(c), id); err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "维修记录不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

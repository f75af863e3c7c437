package handlers

import (
	"strconv"

	"pmp/internal/middleware"
	"pmp/internal/services"
	"pmp/pkg/pagination"
	"pmp/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PropertyHandler struct {
	propertyService *services.PropertyService
	userService     *services.UserService
}

func NewPropertyHandler(propertyService *services.PropertyService, userService *services.UserService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		userService:     userService,
	}
}

type PropertyRequest struct {
	Name           string `json:"name" binding:"required"`
	Address        string `json:"address"`
	TotalRoomCount int    `json:"total_room_count"`
}

// Create 创建物业
func (h *PropertyHandler) Create(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	property, err := h.propertyService.Create(req.Name, req.Address, req.TotalRoomCount)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "创建成功", property)
}

// List 物业列表
func (h *PropertyHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	properties, total, err := h.propertyService.List(middleware.GetScope(c), params.GetOffset(), params.GetLimit())
	if err != nil {
		response.ServerError(c, "查询物业列表失败")
		return
	}

	response.SuccessWithPage(c, properties, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// Get 物业详情
func (h *PropertyHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	property, err := h.propertyService.GetByID(id)
	if err != nil {
		response.NotFound(c, "物业不存在")
		return
	}

	response.Success(c, property)
}

// Update 更新物业
func (h *PropertyHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	property, err := h.propertyService.Update(id, req.Name, req.Address, req.TotalRoomCount)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "物业不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "更新成功", property)
}

// Delete 删除物业
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	if err := h.propertyService.Delete(id); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

type AssignRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// AssignManager 将物业分配给经理
func (h *PropertyHandler) AssignManager(c *gin.Context) {
	propertyID, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	if err := h.userService.AssignProperty(req.UserID, propertyID); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "分配成功", nil)
}

// UnassignManager 取消经理的物业分配
func (h *PropertyHandler) UnassignManager(c *gin.Context) {
	propertyID, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	if err := h.userService.UnassignProperty(req.UserID, propertyID); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "已取消分配", nil)
}

// parseID 解析路径中的ID参数
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

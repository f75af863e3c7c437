package handlers

import (
	"errors"
	"strconv"

	"pmp/internal/middleware"
	"pmp/internal/services"
	"pmp/pkg/pagination"
	"pmp/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type RoomHandler struct {
	roomService *services.RoomService
}

func NewRoomHandler(roomService *services.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// RoomRequest 房间写入请求
// 房间号经自定义roomnumber规则校验：规范化后不能为空
type RoomRequest struct {
	PropertyID     uint     `json:"property_id" binding:"required"`
	RoomNumber     string   `json:"room_number" binding:"required,roomnumber"`
	Layout         string   `json:"layout"`
	SizeSqm        float64  `json:"size_sqm" binding:"required,gt=0"`
	Floor          int      `json:"floor"`
	MonthlyRent    int64    `json:"monthly_rent" binding:"gte=0"`
	MaintenanceFee int64    `json:"maintenance_fee" binding:"gte=0"`
	IsOccupied     bool     `json:"is_occupied"`
	Photos         []string `json:"photos"`
}

func (r *RoomRequest) toInput() *services.RoomInput {
	return &services.RoomInput{
		PropertyID:     r.PropertyID,
		RoomNumber:     r.RoomNumber,
		Layout:         r.Layout,
		SizeSqm:        r.SizeSqm,
		Floor:          r.Floor,
		MonthlyRent:    r.MonthlyRent,
		MaintenanceFee: r.MaintenanceFee,
		IsOccupied:     r.IsOccupied,
		Photos:         r.Photos,
	}
}

// bindRoomRequest 绑定房间请求，房间号校验失败返回专用错误码
func bindRoomRequest(c *gin.Context, req *RoomRequest) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "roomnumber" {
				response.RoomNumberInvalid(c, "房间号不能为空白")
				return false
			}
		}
	}
	response.BadRequest(c, "请求参数错误: "+err.Error())
	return false
}

// writeWriteError 写操作错误响应，区分越权与一般业务错误
func writeWriteError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrScopeDenied) {
		response.ScopeDenied(c, err.Error())
		return
	}
	response.BadRequest(c, err.Error())
}

// Create 创建房间
func (h *RoomHandler) Create(c *gin.Context) {
	var req RoomRequest
	if !bindRoomRequest(c, &req) {
		return
	}

	room, err := h.roomService.Create(middleware.GetScope(c), req.toInput())
	if err != nil {
		writeWriteError(c, err)
		return
	}

	response.SuccessWithMessage(c, "创建成功", room)
}

// List 房间列表，可按物业过滤
func (h *RoomHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	var propertyID uint
	if v := c.Query("property_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			response.BadRequest(c, "无效的物业ID")
			return
		}
		propertyID = uint(id)
	}

	rooms, total, err := h.roomService.List(middleware.GetScope(c), propertyID, params.GetOffset(), params.GetLimit())
	if err != nil {
		response.ServerError(c, "查询房间列表失败")
		return
	}

	response.SuccessWithPage(c, rooms, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// Get 房间详情
func (h *RoomHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	room, err := h.roomService.GetByID(middleware.GetScope(c), id)
	if err != nil {
		response.NotFound(c, "房间不存在")
		return
	}

	response.Success(c, room)
}

// Update 更新房间
func (h *RoomHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req RoomRequest
	if !bindRoomRequest(c, &req) {
		return
	}

	room, err := h.roomService.Update(middleware.GetScope(c), id, req.toInput())
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "房间不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "更新成功", room)
}

// Delete 删除房间
func (h *RoomHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	if err := h.roomService.Delete(middleware.GetScope(c), id); err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "房间不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

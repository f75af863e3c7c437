package handlers

import (
	"time"

	"pmp/internal/middleware"
	"pmp/internal/models"
	"pmp/internal/services"
	"pmp/pkg/pagination"
	"pmp/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ResidentHandler struct {
	residentService *services.ResidentService
	contractService *services.ContractService
	userService     *services.UserService
}

func NewResidentHandler(residentService *services.ResidentService, contractService *services.ContractService, userService *services.UserService) *ResidentHandler {
	return &ResidentHandler{
		residentService: residentService,
		contractService: contractService,
		userService:     userService,
	}
}

type ResidentRequest struct {
	RoomID     uint    `json:"room_id" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	MoveInDate *string `json:"move_in_date"` // YYYY-MM-DD
}

func (r *ResidentRequest) toInput() (*services.ResidentInput, error) {
	in := &services.ResidentInput{
		RoomID: r.RoomID,
		Name:   r.Name,
		Phone:  r.Phone,
		Email:  r.Email,
	}
	if r.MoveInDate != nil && *r.MoveInDate != "" {
		d, err := time.Parse("2006-01-02", *r.MoveInDate)
		if err != nil {
			return nil, err
		}
		in.MoveInDate = &d
	}
	return in, nil
}

// Create 创建住户
func (h *ResidentHandler) Create(c *gin.Context) {
	var req ResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	in, err := req.toInput()
	if err != nil {
		response.BadRequest(c, "入居日期格式错误，应为 YYYY-MM-DD")
		return
	}

	resident, err := h.residentService.Create(middleware.GetScope(c), in)
	if err != nil {
		writeWriteError(c, err)
		return
	}

	response.SuccessWithMessage(c, "创建成功", resident)
}

// List 住户列表
func (h *ResidentHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	residents, total, err := h.residentService.List(middleware.GetScope(c), params.GetOffset(), params.GetLimit())
	if err != nil {
		response.ServerError(c, "查询住户列表失败")
		return
	}

	response.SuccessWithPage(c, residents, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// Get 住户详情（含合同派生状态）
func (h *ResidentHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	resident, err := h.residentService.GetByID(middleware.GetScope(c), id)
	if err != nil {
		response.NotFound(c, "住户不存在")
		return
	}

	contractStatus, err := h.contractService.StatusForResident(resident.ID)
	if err != nil {
		response.ServerError(c, "查询合同状态失败")
		return
	}

	response.Success(c, gin.H{
		"resident":        resident,
		"contract_status": contractStatus,
	})
}

// Update 更新住户
func (h *ResidentHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req ResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	in, err := req.toInput()
	if err != nil {
		response.BadRequest(c, "入居日期格式错误，应为 YYYY-MM-DD")
		return
	}

	resident, err := h.residentService.Update(middleware.GetScope(c), id, in)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "住户不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "更新成功", resident)
}

// Deactivate 退去处理
func (h *ResidentHandler) Deactivate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	if err := h.residentService.Deactivate(middleware.GetScope(c), id); err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "住户不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "退去处理完成", nil)
}

// Delete 删除住户
func (h *ResidentHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	if err := h.residentService.Delete(middleware.GetScope(c), id); err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "住户不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

type ResidentAccountRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// CreateAccount 为住户开通门户账号
func (h *ResidentHandler) CreateAccount(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req ResidentAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	resident, err := h.residentService.GetByID(middleware.GetScope(c), id)
	if err != nil {
		response.NotFound(c, "住户不存在")
		return
	}

	user := &models.User{
		Username:   req.Username,
		Name:       resident.Name,
		Role:       models.RoleResident,
		Status:     models.UserStatusActive,
		ResidentID: &resident.ID,
	}
	if err := user.SetPassword(req.Password); err != nil {
		response.ServerError(c, "密码加密失败")
		return
	}

	if err := h.userService.CreateResidentAccount(user); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "账号开通成功", gin.H{
		"user_id":  user.ID,
		"username": user.Username,
	})
}

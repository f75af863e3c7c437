package handlers

import (
	"pmp/internal/services"
	"pmp/pkg/jwt"
	"pmp/pkg/response"

	"github.com/gin-gonic/gin"
)

// MyHandler 住户门户接口
// 住户只能访问自己名下的房间、合同、维修与申请，
// 不经过后台的数据范围机制
type MyHandler struct {
	residentService *services.ResidentService
	contractService *services.ContractService
	repairService   *services.RepairService
	requestService  *services.RequestService
}

func NewMyHandler(residentService *services.ResidentService, contractService *services.ContractService,
	repairService *services.RepairService, requestService *services.RequestService) *MyHandler {
	return &MyHandler{
		residentService: residentService,
		contractService: contractService,
		repairService:   repairService,
		requestService:  requestService,
	}
}

// residentID 当前登录住户的住户ID
// RequireResident中间件保证claims里一定带有住户ID
func residentID(c *gin.Context) uint {
	return c.MustGet("claims").(*jwt.JWTClaims).ResidentID
}

// Profile 我的入居信息（住户、房间、物业）
func (h *MyHandler) Profile(c *gin.Context) {
	resident, err := h.residentService.GetByID(services.AdminScope(), residentID(c))
	if err != nil {
		response.NotFound(c, "住户记录不存在")
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

// Contracts 我的合同列表（含办理步骤与派生状态）
func (h *MyHandler) Contracts(c *gin.Context) {
	contracts, err := h.contractService.ListByResident(residentID(c))
	if err != nil {
		response.ServerError(c, "查询合同失败")
		return
	}

	items := make([]gin.H, 0, len(contracts))
	for i := range contracts {
		items = append(items, contractView(&contracts[i]))
	}

	response.Success(c, items)
}

// Repairs 我的房间的维修记录
func (h *MyHandler) Repairs(c *gin.Context) {
	resident, err := h.residentService.GetByID(services.AdminScope(), residentID(c))
	if err != nil {
		response.NotFound(c, "住户记录不存在")
		return
	}

	repairs, err := h.repairService.ListByRoom(resident.RoomID)
	if err != nil {
		response.ServerError(c, "查询维修记录失败")
		return
	}

	response.Success(c, repairs)
}

type SubmitRequestRequest struct {
	Category string `json:"category"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
}

// SubmitRequest 提交申请
// 提交成功后负责该物业的后台用户会收到通知
func (h *MyHandler) SubmitRequest(c *gin.Context) {
	var req SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	request, err := h.requestService.Submit(residentID(c), req.Category, req.Title, req.Content)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "申请已提交", request)
}

// Requests 我的申请列表
func (h *MyHandler) Requests(c *gin.Context) {
	requests, err := h.requestService.ListByResident(residentID(c))
	if err != nil {
		response.ServerError(c, "查询申请失败")
		return
	}

	response.Success(c, requests)
}

package handlers

import (
	"strconv"
	"time"

	"pmp/internal/middleware"
	"pmp/internal/models"
	"pmp/internal/services"
	"pmp/pkg/pagination"
	"pmp/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContractHandler struct {
	contractService *services.ContractService
}

func NewContractHandler(contractService *services.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

type ContractRequest struct {
	ResidentID uint     `json:"resident_id" binding:"required"`
	StartDate  *string  `json:"start_date"` // YYYY-MM-DD
	EndDate    *string  `json:"end_date"`
	StepNames  []string `json:"step_names"`
}

// contractView 合同返回体
// 合同状态不落库，返回时从步骤实时派生
func contractView(contract *models.Contract) gin.H {
	return gin.H{
		"contract": contract,
		"status":   contract.DerivedStatus(),
	}
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create 创建合同
func (h *ContractHandler) Create(c *gin.Context) {
	var req ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		response.BadRequest(c, "开始日期格式错误，应为 YYYY-MM-DD")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		response.BadRequest(c, "结束日期格式错误，应为 YYYY-MM-DD")
		return
	}

	contract, err := h.contractService.Create(middleware.GetScope(c), &services.ContractInput{
		ResidentID: req.ResidentID,
		StartDate:  start,
		EndDate:    end,
		StepNames:  req.StepNames,
	})
	if err != nil {
		writeWriteError(c, err)
		return
	}

	response.SuccessWithMessage(c, "创建成功", contractView(contract))
}

// List 合同列表
func (h *ContractHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	contracts, total, err := h.contractService.List(middleware.GetScope(c), params.GetOffset(), params.GetLimit())
	if err != nil {
		response.ServerError(c, "查询合同列表失败")
		return
	}

	items := make([]gin.H, 0, len(contracts))
	for i := range contracts {
		items = append(items, contractView(&contracts[i]))
	}

	response.SuccessWithPage(c, items, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// Get 合同详情
func (h *ContractHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	contract, err := h.contractService.GetByID(middleware.GetScope(c), id)
	if err != nil {
		response.NotFound(c, "合同不存在")
		return
	}

	response.Success(c, contractView(contract))
}

type StepStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStep 更新办理步骤状态
func (h *ContractHandler) UpdateStep(c *gin.Context) {
	contractID, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	stepID, err := strconv.ParseUint(c.Param("step_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的步骤ID")
		return
	}

	var req StepStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	contract, err := h.contractService.UpdateStepStatus(middleware.GetScope(c), contractID, uint(stepID), req.Status)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "合同不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "更新成功", contractView(contract))
}

// UpdateDates 更新合同起止日期
func (h *ContractHandler) UpdateDates(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		response.BadRequest(c, "开始日期格式错误，应为 YYYY-MM-DD")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		response.BadRequest(c, "结束日期格式错误，应为 YYYY-MM-DD")
		return
	}

	contract, err := h.contractService.UpdateDates(middleware.GetScope(c), id, start, end)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "合同不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "更新成功", contractView(contract))
}

// Delete 删除合同
func (h *ContractHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	if err := h.contractService.Delete(middleware.GetScope(c), id); err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "合同不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

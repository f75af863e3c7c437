package handlers

import (
	"pmp/internal/middleware"
	"pmp/internal/services"
	"pmp/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats 仪表盘统计
// 统计范围跟随登录用户的数据范围；数据源异常时返回零值统计
func (h *DashboardHandler) Stats(c *gin.Context) {
	response.Success(c, h.dashboardService.GetStats(middleware.GetScope(c)))
}

// Finance 财务汇总（管理员财务视图）
func (h *DashboardHandler) Finance(c *gin.Context) {
	summary, err := h.dashboardService.GetFinanceSummary(middleware.GetScope(c))
	if err != nil {
		response.ServerError(c, "计算财务汇总失败")
		return
	}

	response.Success(c, summary)
}

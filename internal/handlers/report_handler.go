package handlers

import (
	"fmt"
	"net/http"

	"pmp/internal/middleware"
	"pmp/internal/services"
	"pmp/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PropertyReport 下载物业经营报表（xlsx）
func (h *ReportHandler) PropertyReport(c *gin.Context) {
	data, filename, err := h.reportService.BuildPropertyReport(middleware.GetScope(c))
	if err != nil {
		response.ServerError(c, "生成报表失败")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

package services

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// 房间明细表头
var roomSheetHeader = []string{
	"物业", "房间号", "户型", "面积(㎡)", "楼层", "月租金", "管理费", "入住状态",
}

type ReportService struct {
	dashboardService *DashboardService
}

func NewReportService() *ReportService {
	return &ReportService{
		dashboardService: NewDashboardService(),
	}
}

// NewReportServiceWithDashboard 指定统计服务创建（测试用）
func NewReportServiceWithDashboard(dashboard *DashboardService) *ReportService {
	return &ReportService{dashboardService: dashboard}
}

// BuildPropertyReport 生成物业经营报表（xlsx）
// 包含汇总页和房间明细页
func (s *ReportService) BuildPropertyReport(scope *Scope) ([]byte, string, error) {
	snap, err := s.dashboardService.loadSnapshot(scope)
	if err != nil {
		return nil, "", fmt.Errorf("加载报表数据失败: %v", err)
	}

	summary, err := s.dashboardService.GetFinanceSummary(scope)
	if err != nil {
		return nil, "", fmt.Errorf("计算财务汇总失败: %v", err)
	}

	stats := ComputeStats(snap, s.dashboardService.policy, time.Now())

	f := excelize.NewFile()

	summarySheet := "汇总"
	index, err := f.NewSheet(summarySheet)
	if err != nil {
		f.Close()
		return nil, "", fmt.Errorf("创建工作表失败: %v", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, "", fmt.Errorf("创建表头样式失败: %v", err)
	}

	// 汇总页
	summaryRows := [][]interface{}{
		{"物业数", stats.TotalProperties},
		{"房间数", stats.TotalRooms},
		{"已入住房间", stats.OccupiedRooms},
		{"平均入住率(%)", stats.AverageOccupancy},
		{"住户数", stats.TotalResidents},
		{"生效合同数", stats.ActiveContracts},
		{"月度收入", stats.TotalMonthlyRevenue},
		{"已完结维修费用", summary.CompletedRepairCost},
		{"未完结维修", stats.PendingRepairs},
		{"6个月内到期合同", stats.ExpiringContracts},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			f.Close()
			return nil, "", fmt.Errorf("写入汇总页失败: %v", err)
		}
	}
	_ = f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(summaryRows)), headerStyle)

	// 物业维度明细
	propSheet := "物业明细"
	if _, err := f.NewSheet(propSheet); err != nil {
		f.Close()
		return nil, "", fmt.Errorf("创建工作表失败: %v", err)
	}
	propHeader := []interface{}{"物业", "房间数", "已入住", "入住率(%)", "月度收入"}
	if err := f.SetSheetRow(propSheet, "A1", &propHeader); err != nil {
		f.Close()
		return nil, "", fmt.Errorf("写入物业明细表头失败: %v", err)
	}
	_ = f.SetCellStyle(propSheet, "A1", "E1", headerStyle)
	for i, pf := range summary.Properties {
		row := []interface{}{pf.PropertyName, pf.RoomCount, pf.OccupiedRooms, pf.OccupancyRate, pf.MonthlyRevenue}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(propSheet, cell, &row); err != nil {
			f.Close()
			return nil, "", fmt.Errorf("写入物业明细失败: %v", err)
		}
	}

	// 房间明细页
	roomSheet := "房间明细"
	if _, err := f.NewSheet(roomSheet); err != nil {
		f.Close()
		return nil, "", fmt.Errorf("创建工作表失败: %v", err)
	}
	header := make([]interface{}, len(roomSheetHeader))
	for i, h := range roomSheetHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(roomSheet, "A1", &header); err != nil {
		f.Close()
		return nil, "", fmt.Errorf("写入房间明细表头失败: %v", err)
	}
	_ = f.SetCellStyle(roomSheet, "A1", "H1", headerStyle)

	propertyNames := make(map[uint]string, len(snap.Properties))
	for _, p := range snap.Properties {
		propertyNames[p.ID] = p.Name
	}
	for i, room := range snap.Rooms {
		occupied := "空室"
		if room.IsOccupied {
			occupied = "入住中"
		}
		row := []interface{}{
			propertyNames[room.PropertyID],
			room.RoomNumber,
			room.Layout,
			room.SizeSqm,
			room.Floor,
			room.MonthlyRent,
			room.MaintenanceFee,
			occupied,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(roomSheet, cell, &row); err != nil {
			f.Close()
			return nil, "", fmt.Errorf("写入房间明细失败: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, "", fmt.Errorf("生成报表文件失败: %v", err)
	}
	_ = f.Close()

	filename := fmt.Sprintf("property_report_%s.xlsx", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

package portal

import (
	"pmp/internal/models"
)

// View 门户视图标识
type View string

// 视图常量
const (
	ViewDashboard       View = "dashboard"
	ViewProperty        View = "property"
	ViewRoom            View = "room"
	ViewResident        View = "resident"
	ViewContract        View = "contract"
	ViewRepair          View = "repair"
	ViewFinance         View = "finance"
	ViewReport          View = "report"
	ViewContractor      View = "contractor"
	ViewPayment         View = "payment"
	ViewNotification    View = "notification"
	ViewResidentRequest View = "resident_request"
	ViewResidentPortal  View = "resident_portal"
)

// DefaultView 角色的默认落地视图
func DefaultView(role string) View {
	if role == models.RoleResident {
		return ViewResidentPortal
	}
	return ViewDashboard
}

// NavEntry 导航项
type NavEntry struct {
	View  View   `json:"view"`
	Label string `json:"label"`
}

// 管理员主导航（有序）
var adminNavigation = []NavEntry{
	{ViewDashboard, "仪表盘"},
	{ViewProperty, "物业管理"},
	{ViewRoom, "房间管理"},
	{ViewResident, "住户管理"},
	{ViewContract, "合同管理"},
	{ViewRepair, "维修管理"},
	{ViewFinance, "财务管理"},
	{ViewReport, "报表"},
	{ViewContractor, "施工方管理"},
	{ViewPayment, "支付管理"},
	{ViewNotification, "通知"},
}

// 物业经理主导航：管理员导航的子集，另加"住户申请"入口
var managerNavigation = []NavEntry{
	{ViewDashboard, "仪表盘"},
	{ViewRoom, "房间管理"},
	{ViewResident, "住户管理"},
	{ViewContract, "合同管理"},
	{ViewRepair, "维修管理"},
	{ViewNotification, "通知"},
	{ViewResidentRequest, "住户申请"},
}

// 仅管理员可见的视图
var adminOnlyViews = map[View]bool{
	ViewProperty:   true,
	ViewFinance:    true,
	ViewReport:     true,
	ViewContractor: true,
	ViewPayment:    true,
}

// 后台共通视图（管理员与物业经理均可访问）
var staffViews = map[View]bool{
	ViewDashboard:       true,
	ViewRoom:            true,
	ViewResident:        true,
	ViewContract:        true,
	ViewRepair:          true,
	ViewNotification:    true,
	ViewResidentRequest: true,
}

// NavigationFor 返回角色的有序导航项
// 住户没有后台导航壳，返回空列表
func NavigationFor(role string) []NavEntry {
	switch role {
	case models.RoleAdmin:
		nav := make([]NavEntry, len(adminNavigation))
		copy(nav, adminNavigation)
		return nav
	case models.RoleManager:
		nav := make([]NavEntry, len(managerNavigation))
		copy(nav, managerNavigation)
		return nav
	default:
		return []NavEntry{}
	}
}

// IsViewAllowed 判断角色是否可访问视图
// 纯函数：结果只取决于 (role, view)，未定义的视图一律拒绝
func IsViewAllowed(role string, view View) bool {
	switch role {
	case models.RoleAdmin:
		return adminOnlyViews[view] || staffViews[view]
	case models.RoleManager:
		return staffViews[view]
	case models.RoleResident:
		// 住户只拥有独立的住户门户视图
		return view == ViewResidentPortal
	default:
		return false
	}
}

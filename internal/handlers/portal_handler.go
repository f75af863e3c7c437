package handlers

import (
	"pmp/internal/portal"
	"pmp/pkg/response"

	"github.com/gin-gonic/gin"
)

// PortalHandler 门户入口处理器
// 门户选择、导航等与登录前后壳层相关的接口
type PortalHandler struct{}

func NewPortalHandler() *PortalHandler {
	return &PortalHandler{}
}

// PortalEntry 门户项
type PortalEntry struct {
	Role  string `json:"role"`
	Label string `json:"label"`
}

// 门户选择页的三个入口（有序）
var portalEntries = []PortalEntry{
	{"admin", "管理员门户"},
	{"manager", "物业经理门户"},
	{"resident", "住户门户"},
}

// Entry 入口解析
// URL带合法role参数时跳过门户选择页直达对应登录页；
// 无参数或参数非法时返回门户选择页
func (h *PortalHandler) Entry(c *gin.Context) {
	roleHint := c.Query("role")
	session := portal.NewSession(roleHint)

	resp := gin.H{
		"state": session.State(),
		"role":  session.Role(),
	}
	if session.State() == portal.StateNoPortalSelected {
		resp["portals"] = portalEntries
	}

	response.Success(c, resp)
}

// Navigation 当前角色的导航与默认视图
// 导航项有序且只含角色可访问的视图，住户返回空导航
func (h *PortalHandler) Navigation(c *gin.Context) {
	role := c.MustGet("role").(string)

	response.Success(c, gin.H{
		"default_view": portal.DefaultView(role),
		"entries":      portal.NavigationFor(role),
	})
}

// Navigate 校验视图切换
// 无权访问的视图回退到默认视图，返回实际生效的视图
func (h *PortalHandler) Navigate(c *gin.Context) {
	role := c.MustGet("role").(string)
	view := portal.View(c.Param("view"))

	if portal.IsViewAllowed(role, view) {
		response.Success(c, gin.H{"view": view})
		return
	}
	response.Success(c, gin.H{"view": portal.DefaultView(role)})
}

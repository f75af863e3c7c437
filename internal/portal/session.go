package portal

import (
	"fmt"

	"pmp/internal/models"
)

// State 会话状态
type State string

// 会话状态常量
const (
	StateNoPortalSelected State = "no_portal_selected" // 尚未选择门户
	StateAwaitingLogin    State = "awaiting_login"     // 已选择门户，等待登录
	StateAuthenticated    State = "authenticated"      // 已登录
)

// CredentialValidator 凭证校验协作方
// 住户角色在校验通过之外还要求账号处于启用状态（由实现方保证）
type CredentialValidator interface {
	Validate(role, username, password string) error
}

// Session 门户会话状态机
// 角色、登录态与当前视图只通过下面的迁移方法变化
type Session struct {
	state State
	role  string
	view  View
}

// ValidRole 是否为合法的门户角色
func ValidRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleManager || role == models.RoleResident
}

// NewSession 根据入口URL的角色提示创建会话
// 带合法角色提示时直接进入等待登录状态，跳过门户选择页
func NewSession(roleHint string) *Session {
	if ValidRole(roleHint) {
		return &Session{state: StateAwaitingLogin, role: roleHint}
	}
	return &Session{state: StateNoPortalSelected}
}

// State 当前状态
func (s *Session) State() State {
	return s.state
}

// Role 当前角色（未选择门户时为空）
func (s *Session) Role() string {
	return s.role
}

// CurrentView 当前视图（未登录时为空）
func (s *Session) CurrentView() View {
	return s.view
}

// RoleParam 写入共享URL的角色参数
// 登出后为空，使入口回到门户选择页
func (s *Session) RoleParam() string {
	return s.role
}

// SelectPortal 选择门户
func (s *Session) SelectPortal(role string) error {
	if s.state != StateNoPortalSelected {
		return fmt.Errorf("当前状态无法选择门户")
	}
	if !ValidRole(role) {
		return fmt.Errorf("未知的门户角色: %s", role)
	}
	s.state = StateAwaitingLogin
	s.role = role
	return nil
}

// Login 使用凭证登录
// 校验失败时保持等待登录状态并返回错误信息
func (s *Session) Login(validator CredentialValidator, username, password string) error {
	if s.state != StateAwaitingLogin {
		return fmt.Errorf("当前状态无法登录")
	}
	if err := validator.Validate(s.role, username, password); err != nil {
		return err
	}
	s.state = StateAuthenticated
	s.view = DefaultView(s.role)
	return nil
}

// Navigate 切换视图并返回实际生效的视图
// 无权访问的视图静默回退到默认视图而不报错
func (s *Session) Navigate(view View) View {
	if s.state != StateAuthenticated {
		return ""
	}
	if IsViewAllowed(s.role, view) {
		s.view = view
	} else {
		s.view = DefaultView(s.role)
	}
	return s.view
}

// Logout 登出并完全重置会话
// 回到门户选择页而不是同角色的重新登录页
func (s *Session) Logout() {
	s.state = StateNoPortalSelected
	s.role = ""
	s.view = ""
}

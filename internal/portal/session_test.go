package portal

import (
	"fmt"
	"testing"

	"pmp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeValidator 测试用凭证校验器
type fakeValidator struct {
	accept bool
	err    string
}

func (v *fakeValidator) Validate(role, username, password string) error {
	if v.accept {
		return nil
	}
	return fmt.Errorf("%s", v.err)
}

func TestNewSessionWithoutHint(t *testing.T) {
	s := NewSession("")
	assert.Equal(t, StateNoPortalSelected, s.State())
	assert.Empty(t, s.Role())
	assert.Empty(t, s.RoleParam())
}

func TestNewSessionWithRoleHint(t *testing.T) {
	// 入口URL带角色提示时跳过门户选择
	s := NewSession(models.RoleManager)
	assert.Equal(t, StateAwaitingLogin, s.State())
	assert.Equal(t, models.RoleManager, s.Role())
	assert.Equal(t, models.RoleManager, s.RoleParam())
}

func TestNewSessionWithInvalidHint(t *testing.T) {
	s := NewSession("superuser")
	assert.Equal(t, StateNoPortalSelected, s.State())
}

func TestSelectPortal(t *testing.T) {
	s := NewSession("")
	require.NoError(t, s.SelectPortal(models.RoleAdmin))
	assert.Equal(t, StateAwaitingLogin, s.State())
	assert.Equal(t, models.RoleAdmin, s.RoleParam())

	// 已选择门户后不能再次选择
	assert.Error(t, s.SelectPortal(models.RoleManager))
}

func TestSelectPortalUnknownRole(t *testing.T) {
	s := NewSession("")
	assert.Error(t, s.SelectPortal("owner"))
	assert.Equal(t, StateNoPortalSelected, s.State())
}

func TestLoginSuccessLandsOnDefaultView(t *testing.T) {
	s := NewSession(models.RoleManager)
	require.NoError(t, s.Login(&fakeValidator{accept: true}, "manager01", "pass"))
	assert.Equal(t, StateAuthenticated, s.State())
	assert.Equal(t, ViewDashboard, s.CurrentView())
}

func TestLoginFailureStaysAwaiting(t *testing.T) {
	s := NewSession(models.RoleAdmin)
	err := s.Login(&fakeValidator{err: "用户名或密码错误"}, "admin", "wrong")
	require.Error(t, err)
	assert.Equal(t, "用户名或密码错误", err.Error())
	assert.Equal(t, StateAwaitingLogin, s.State())
	assert.Equal(t, models.RoleAdmin, s.Role())
}

func TestManagerBlockedFromFinanceFallsBackToDashboard(t *testing.T) {
	// 场景：角色提示manager + 登录成功 → 导航到财务视图被静默回退到仪表盘
	s := NewSession(models.RoleManager)
	require.NoError(t, s.Login(&fakeValidator{accept: true}, "manager01", "pass"))
	assert.Equal(t, StateAuthenticated, s.State())
	assert.Equal(t, ViewDashboard, s.CurrentView())

	got := s.Navigate(ViewFinance)
	assert.Equal(t, ViewDashboard, got)
	assert.Equal(t, ViewDashboard, s.CurrentView())

	// 允许的视图正常切换
	got = s.Navigate(ViewRepair)
	assert.Equal(t, ViewRepair, got)
}

func TestResidentAlwaysOnResidentPortal(t *testing.T) {
	s := NewSession(models.RoleResident)
	require.NoError(t, s.Login(&fakeValidator{accept: true}, "resident01", "pass"))
	assert.Equal(t, ViewResidentPortal, s.CurrentView())

	got := s.Navigate(ViewDashboard)
	assert.Equal(t, ViewResidentPortal, got)
}

func TestLogoutResetsEverything(t *testing.T) {
	for _, role := range []string{models.RoleAdmin, models.RoleManager, models.RoleResident} {
		s := NewSession(role)
		require.NoError(t, s.Login(&fakeValidator{accept: true}, "user", "pass"))

		s.Logout()
		assert.Equal(t, StateNoPortalSelected, s.State())
		assert.Empty(t, s.Role())
		assert.Empty(t, s.CurrentView())
		// URL角色参数被清除
		assert.Empty(t, s.RoleParam())
	}
}

func TestNavigateBeforeLogin(t *testing.T) {
	s := NewSession(models.RoleAdmin)
	assert.Equal(t, View(""), s.Navigate(ViewDashboard))
}

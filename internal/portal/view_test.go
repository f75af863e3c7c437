package portal

import (
	"testing"

	"pmp/internal/models"

	"github.com/stretchr/testify/assert"
)

// 全部已定义视图
var allViews = []View{
	ViewDashboard, ViewProperty, ViewRoom, ViewResident, ViewContract,
	ViewRepair, ViewFinance, ViewReport, ViewContractor, ViewPayment,
	ViewNotification, ViewResidentRequest, ViewResidentPortal,
}

func TestIsViewAllowedDeterministic(t *testing.T) {
	roles := []string{models.RoleAdmin, models.RoleManager, models.RoleResident, "none", ""}
	for _, role := range roles {
		for _, view := range allViews {
			first := IsViewAllowed(role, view)
			second := IsViewAllowed(role, view)
			assert.Equal(t, first, second, "role=%s view=%s", role, view)
		}
	}
}

func TestAdminOnlyViews(t *testing.T) {
	adminOnly := []View{ViewProperty, ViewFinance, ViewReport, ViewContractor, ViewPayment}
	for _, view := range adminOnly {
		assert.True(t, IsViewAllowed(models.RoleAdmin, view), "admin should access %s", view)
		assert.False(t, IsViewAllowed(models.RoleManager, view), "manager must not access %s", view)
		assert.False(t, IsViewAllowed(models.RoleResident, view), "resident must not access %s", view)
	}
}

func TestStaffSharedViews(t *testing.T) {
	shared := []View{ViewDashboard, ViewRoom, ViewResident, ViewContract, ViewRepair, ViewNotification, ViewResidentRequest}
	for _, view := range shared {
		assert.True(t, IsViewAllowed(models.RoleAdmin, view))
		assert.True(t, IsViewAllowed(models.RoleManager, view))
	}
}

func TestResidentOnlySeesResidentPortal(t *testing.T) {
	for _, view := range allViews {
		got := IsViewAllowed(models.RoleResident, view)
		assert.Equal(t, view == ViewResidentPortal, got, "view=%s", view)
	}
}

func TestUnknownViewDenied(t *testing.T) {
	for _, role := range []string{models.RoleAdmin, models.RoleManager, models.RoleResident} {
		assert.False(t, IsViewAllowed(role, View("no_such_view")))
	}
}

func TestManagerNavigationSubsetOfAdmin(t *testing.T) {
	adminViews := make(map[View]bool)
	for _, entry := range NavigationFor(models.RoleAdmin) {
		adminViews[entry.View] = true
	}

	for _, entry := range NavigationFor(models.RoleManager) {
		if entry.View == ViewResidentRequest {
			// 住户申请入口只出现在经理导航
			assert.False(t, adminViews[entry.View])
			continue
		}
		assert.True(t, adminViews[entry.View], "manager nav entry %s missing from admin nav", entry.View)
	}
}

func TestManagerNavigationOmitsAdminOnlyEntries(t *testing.T) {
	for _, entry := range NavigationFor(models.RoleManager) {
		assert.NotContains(t, []View{ViewProperty, ViewFinance, ViewReport, ViewContractor, ViewPayment}, entry.View)
	}
}

func TestResidentNavigationEmpty(t *testing.T) {
	assert.Empty(t, NavigationFor(models.RoleResident))
	assert.Empty(t, NavigationFor("none"))
}

func TestDefaultView(t *testing.T) {
	assert.Equal(t, ViewDashboard, DefaultView(models.RoleAdmin))
	assert.Equal(t, ViewDashboard, DefaultView(models.RoleManager))
	assert.Equal(t, ViewResidentPortal, DefaultView(models.RoleResident))
}

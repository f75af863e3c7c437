package services

import (
	"testing"

	"pmp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB, username, role, password string, residentID *uint) *models.User {
	t.Helper()
	user := &models.User{
		Username:   username,
		Name:       username,
		Role:       role,
		Status:     models.UserStatusActive,
		ResidentID: residentID,
	}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestValidateStaffCredentials(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserServiceWithDB(db)
	createUser(t, db, "admin", models.RoleAdmin, "secret", nil)

	assert.NoError(t, service.Validate(models.RoleAdmin, "admin", "secret"))

	// 密码错误
	err := service.Validate(models.RoleAdmin, "admin", "wrong")
	assert.EqualError(t, err, "用户名或密码错误")

	// 角色不匹配：管理员账号不能从经理门户登录
	err = service.Validate(models.RoleManager, "admin", "secret")
	assert.EqualError(t, err, "用户名或密码错误")
}

func TestValidateDisabledUser(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserServiceWithDB(db)

	user := createUser(t, db, "manager", models.RoleManager, "secret", nil)
	require.NoError(t, db.Model(user).Update("status", models.UserStatusInactive).Error)

	err := service.Validate(models.RoleManager, "manager", "secret")
	assert.EqualError(t, err, "账号已被禁用")
}

// 住户记录停用后，即使凭证正确也拒绝登录
func TestValidateInactiveResident(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserServiceWithDB(db)

	property := createProperty(t, db, "绿丘公寓")
	room := &models.Room{PropertyID: property.ID, RoomNumber: "101", SizeSqm: 25}
	require.NoError(t, db.Create(room).Error)

	resident := &models.Resident{RoomID: room.ID, Name: "铃木一郎", IsActive: false}
	require.NoError(t, db.Create(resident).Error)
	createUser(t, db, "suzuki", models.RoleResident, "secret", &resident.ID)

	err := service.Validate(models.RoleResident, "suzuki", "secret")
	assert.EqualError(t, err, "账号已被禁用")

	// 重新启用后可以登录
	require.NoError(t, db.Model(resident).Update("is_active", true).Error)
	assert.NoError(t, service.Validate(models.RoleResident, "suzuki", "secret"))
}

func TestValidateResidentWithoutLink(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserServiceWithDB(db)
	createUser(t, db, "orphan", models.RoleResident, "secret", nil)

	err := service.Validate(models.RoleResident, "orphan", "secret")
	assert.EqualError(t, err, "该账号未开通住户门户")
}

func TestScopeFor(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserServiceWithDB(db)

	admin := createUser(t, db, "admin", models.RoleAdmin, "secret", nil)
	manager := createUser(t, db, "manager", models.RoleManager, "secret", nil)
	property := createProperty(t, db, "绿丘公寓")

	scope, err := service.ScopeFor(admin)
	require.NoError(t, err)
	assert.True(t, scope.All)

	// 未分配物业的经理：空范围而不是全量
	scope, err = service.ScopeFor(manager)
	require.NoError(t, err)
	assert.False(t, scope.All)
	assert.Empty(t, scope.PropertyIDs)

	require.NoError(t, service.AssignProperty(manager.ID, property.ID))

	scope, err = service.ScopeFor(manager)
	require.NoError(t, err)
	assert.Equal(t, []uint{property.ID}, scope.PropertyIDs)
	assert.True(t, scope.Allows(property.ID))
	assert.False(t, scope.Allows(property.ID+1))
}

func TestAssignPropertyValidation(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserServiceWithDB(db)

	admin := createUser(t, db, "admin", models.RoleAdmin, "secret", nil)
	manager := createUser(t, db, "manager", models.RoleManager, "secret", nil)
	property := createProperty(t, db, "绿丘公寓")

	// 只能给经理分配
	assert.Error(t, service.AssignProperty(admin.ID, property.ID))

	require.NoError(t, service.AssignProperty(manager.ID, property.ID))
	// 重复分配被拒绝
	assert.Error(t, service.AssignProperty(manager.ID, property.ID))

	require.NoError(t, service.UnassignProperty(manager.ID, property.ID))
	scope, err := service.ScopeFor(manager)
	require.NoError(t, err)
	assert.Empty(t, scope.PropertyIDs)
}

func TestCreateResidentAccount(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserServiceWithDB(db)

	property := createProperty(t, db, "绿丘公寓")
	room := &models.Room{PropertyID: property.ID, RoomNumber: "101", SizeSqm: 25}
	require.NoError(t, db.Create(room).Error)
	resident := &models.Resident{RoomID: room.ID, Name: "田中太郎", IsActive: true}
	require.NoError(t, db.Create(resident).Error)

	user := &models.User{
		Username:   "tanaka",
		Name:       resident.Name,
		Role:       models.RoleResident,
		Status:     models.UserStatusActive,
		ResidentID: &resident.ID,
	}
	require.NoError(t, user.SetPassword("secret"))
	require.NoError(t, service.CreateResidentAccount(user))

	// 同一住户不能开通第二个账号
	second := &models.User{
		Username:   "tanaka2",
		Name:       resident.Name,
		Role:       models.RoleResident,
		Status:     models.UserStatusActive,
		ResidentID: &resident.ID,
	}
	require.NoError(t, second.SetPassword("secret"))
	assert.Error(t, service.CreateResidentAccount(second))
}

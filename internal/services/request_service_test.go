package services

import (
	"testing"

	"pmp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRequestFixture(t *testing.T, db *gorm.DB) *models.Resident {
	t.Helper()

	property := createProperty(t, db, "绿丘公寓")
	room := &models.Room{PropertyID: property.ID, RoomNumber: "101", SizeSqm: 25}
	require.NoError(t, db.Create(room).Error)
	resident := &models.Resident{RoomID: room.ID, Name: "田中太郎", IsActive: true}
	require.NoError(t, db.Create(resident).Error)
	return resident
}

func TestRequestLifecycle(t *testing.T) {
	db := setupTestDB(t)
	service := NewRequestServiceWithDB(db)
	resident := setupRequestFixture(t, db)

	request, err := service.Submit(resident.ID, "设备", "换气扇异响", "厨房换气扇运转时有噪音")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, request.Status)

	count, err := service.UnreadCount(AdminScope())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 确认后未读计数归零
	request, err = service.Acknowledge(AdminScope(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusInProgress, request.Status)

	count, err = service.UnreadCount(AdminScope())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// 已确认的申请不能重复确认
	_, err = service.Acknowledge(AdminScope(), request.ID)
	assert.Error(t, err)

	request, err = service.Resolve(AdminScope(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusResolved, request.Status)
}

func TestRequestSubmitValidation(t *testing.T) {
	db := setupTestDB(t)
	service := NewRequestServiceWithDB(db)
	resident := setupRequestFixture(t, db)

	_, err := service.Submit(resident.ID, "设备", "", "")
	assert.Error(t, err)

	_, err = service.Submit(resident.ID+100, "设备", "标题", "")
	assert.Error(t, err)
}

// 提交申请后，负责该物业的后台用户收到通知
func TestRequestSubmitNotifiesStaff(t *testing.T) {
	db := setupTestDB(t)
	service := NewRequestServiceWithDB(db)
	resident := setupRequestFixture(t, db)

	admin := createUser(t, db, "admin", models.RoleAdmin, "secret", nil)
	// 其他物业的经理不应收到通知
	otherManager := createUser(t, db, "manager", models.RoleManager, "secret", nil)
	other := createProperty(t, db, "樱花庄")
	require.NoError(t, NewUserServiceWithDB(db).AssignProperty(otherManager.ID, other.ID))

	_, err := service.Submit(resident.ID, "设备", "换气扇异响", "")
	require.NoError(t, err)

	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, admin.ID, notifications[0].UserID)
	assert.Equal(t, models.NotifyTypeResidentRequest, notifications[0].Type)
}

func TestRequestScopeEnforcement(t *testing.T) {
	db := setupTestDB(t)
	service := NewRequestServiceWithDB(db)
	resident := setupRequestFixture(t, db)

	request, err := service.Submit(resident.ID, "设备", "换气扇异响", "")
	require.NoError(t, err)

	// 范围外的申请按不存在处理
	_, err = service.GetByID(&Scope{}, request.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	count, err := service.UnreadCount(&Scope{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

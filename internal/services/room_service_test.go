package services

import (
	"testing"

	"pmp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func roomInput(propertyID uint, number string) *RoomInput {
	return &RoomInput{
		PropertyID:  propertyID,
		RoomNumber:  number,
		Layout:      "1K",
		SizeSqm:     25.0,
		MonthlyRent: 65000,
	}
}

func TestRoomCreateNormalizesRoomNumber(t *testing.T) {
	db := setupTestDB(t)
	service := NewRoomServiceWithDB(db)
	property := createProperty(t, db, "绿丘公寓")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"全角数字", "１０１", "101"},
		{"短数字补零", " 7 ", "007"},
		{"混入文字保持原样", "2F-201", "2F-201"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room, err := service.Create(AdminScope(), roomInput(property.ID, tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, room.RoomNumber)
		})
	}
}

func TestRoomCreateRejectsDuplicate(t *testing.T) {
	db := setupTestDB(t)
	service := NewRoomServiceWithDB(db)
	property := createProperty(t, db, "绿丘公寓")

	_, err := service.Create(AdminScope(), roomInput(property.ID, "101"))
	require.NoError(t, err)

	// 全角写法规范化后与已有房间号冲突
	_, err = service.Create(AdminScope(), roomInput(property.ID, "１０１"))
	assert.Error(t, err)

	// 不同物业下允许同号房间
	other := createProperty(t, db, "樱花庄")
	_, err = service.Create(AdminScope(), roomInput(other.ID, "101"))
	assert.NoError(t, err)
}

func TestRoomCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	service := NewRoomServiceWithDB(db)
	property := createProperty(t, db, "绿丘公寓")

	_, err := service.Create(AdminScope(), roomInput(0, "101"))
	assert.Error(t, err)

	in := roomInput(property.ID, "101")
	in.SizeSqm = 0
	_, err = service.Create(AdminScope(), in)
	assert.Error(t, err)

	in = roomInput(property.ID, "101")
	in.MonthlyRent = -1
	_, err = service.Create(AdminScope(), in)
	assert.Error(t, err)
}

// 经理的数据范围只覆盖分配到的物业
func TestRoomScopeEnforcement(t *testing.T) {
	db := setupTestDB(t)
	service := NewRoomServiceWithDB(db)

	mine := createProperty(t, db, "绿丘公寓")
	other := createProperty(t, db, "樱花庄")

	adminRoom, err := service.Create(AdminScope(), roomInput(other.ID, "101"))
	require.NoError(t, err)

	scope := &Scope{PropertyIDs: []uint{mine.ID}}

	// 越权创建被拒绝
	_, err = service.Create(scope, roomInput(other.ID, "102"))
	assert.Error(t, err)

	// 范围外的房间按不存在处理
	_, err = service.GetByID(scope, adminRoom.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// 列表只返回范围内的房间
	myRoom, err := service.Create(scope, roomInput(mine.ID, "201"))
	require.NoError(t, err)

	rooms, total, err := service.List(scope, 0, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rooms, 1)
	assert.Equal(t, myRoom.ID, rooms[0].ID)
}

// 删除为软删除：列表不再返回，且原房间号可以复用
func TestRoomDeleteKeepsRecordAndFreesNumber(t *testing.T) {
	db := setupTestDB(t)
	service := NewRoomServiceWithDB(db)
	property := createProperty(t, db, "绿丘公寓")

	room, err := service.Create(AdminScope(), roomInput(property.ID, "101"))
	require.NoError(t, err)
	require.NoError(t, service.Delete(AdminScope(), room.ID))

	_, total, err := service.List(AdminScope(), property.ID, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	// 记录保留在表中可追溯
	var kept int64
	db.Unscoped().Model(&models.Room{}).Where("id = ?", room.ID).Count(&kept)
	assert.Equal(t, int64(1), kept)

	_, err = service.Create(AdminScope(), roomInput(property.ID, "101"))
	assert.NoError(t, err)
}

// 未分配任何物业的经理看到空集
func TestRoomEmptyScopeSeesNothing(t *testing.T) {
	db := setupTestDB(t)
	service := NewRoomServiceWithDB(db)
	property := createProperty(t, db, "绿丘公寓")

	_, err := service.Create(AdminScope(), roomInput(property.ID, "101"))
	require.NoError(t, err)

	rooms, total, err := service.List(&Scope{}, 0, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, rooms)
}

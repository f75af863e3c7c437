package services

import (
	"math/rand"
	"testing"
	"time"

	"pmp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time { return &t }

func sampleSnapshot() *Snapshot {
	moveIn := testNow.AddDate(-1, 0, 0)
	endSoon := testNow.AddDate(0, 3, 0)
	endLater := testNow.AddDate(1, 0, 0)

	return &Snapshot{
		Properties: []models.Property{
			{BaseModel: models.BaseModel{ID: 1}, Name: "绿丘公寓"},
			{BaseModel: models.BaseModel{ID: 2}, Name: "樱花庄"},
		},
		Rooms: []models.Room{
			{BaseModel: models.BaseModel{ID: 1}, PropertyID: 1, RoomNumber: "101", MonthlyRent: 80000, MaintenanceFee: 5000, IsOccupied: true},
			{BaseModel: models.BaseModel{ID: 2}, PropertyID: 1, RoomNumber: "102", MonthlyRent: 85000, MaintenanceFee: 5000, IsOccupied: false},
			{BaseModel: models.BaseModel{ID: 3}, PropertyID: 2, RoomNumber: "201", MonthlyRent: 90000, MaintenanceFee: 6000, IsOccupied: true},
		},
		Residents: []models.Resident{
			{BaseModel: models.BaseModel{ID: 1}, RoomID: 1, Name: "田中太郎", MoveInDate: &moveIn, IsActive: true},
			{BaseModel: models.BaseModel{ID: 2}, RoomID: 3, Name: "佐藤花子", IsActive: true},
		},
		Contracts: []models.Contract{
			{
				BaseModel:  models.BaseModel{ID: 1},
				ResidentID: 1,
				EndDate:    &endSoon,
				Steps: []models.ContractStep{
					{Seq: 1, Status: models.StepStatusCompleted},
					{Seq: 2, Status: models.StepStatusCompleted},
				},
			},
			{
				BaseModel:  models.BaseModel{ID: 2},
				ResidentID: 2,
				EndDate:    &endLater,
				Steps: []models.ContractStep{
					{Seq: 1, Status: models.StepStatusPending},
				},
			},
		},
		Repairs: []models.Repair{
			{BaseModel: models.BaseModel{ID: 1}, Status: models.RepairStatusPending, Cost: 12000, IsUrgent: true, RequestDate: datePtr(testNow.AddDate(0, 0, -1))},
			{BaseModel: models.BaseModel{ID: 2}, Status: models.RepairStatusCompleted, Cost: 30000, RequestDate: datePtr(testNow.AddDate(0, 0, -10))},
			{BaseModel: models.BaseModel{ID: 3}, Status: models.RepairStatusInProgress, Cost: 0, RequestDate: datePtr(testNow.AddDate(0, 0, -3))},
		},
		UnreadRequests: 2,
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(sampleSnapshot(), RevenuePolicy{}, testNow)

	assert.Equal(t, 2, stats.TotalProperties)
	assert.Equal(t, 3, stats.TotalRooms)
	assert.Equal(t, 2, stats.OccupiedRooms)
	assert.Equal(t, 67, stats.AverageOccupancy) // 2/3 → 66.67 四舍五入
	assert.Equal(t, 2, stats.TotalResidents)
	// 合同1全部完成，合同2未开始
	assert.Equal(t, 1, stats.ActiveContracts)
	assert.Equal(t, int64(80000+90000), stats.TotalMonthlyRevenue)
	assert.Equal(t, 2, stats.PendingRepairs)
	assert.Equal(t, 1, stats.UrgentRepairs)
	assert.Equal(t, int64(2), stats.UnreadRequests)
	assert.Equal(t, 1, stats.ExpiringContracts)
	require.Len(t, stats.RecentRepairs, 3)
	// 按申请日期降序
	assert.Equal(t, uint(1), stats.RecentRepairs[0].ID)
	assert.Equal(t, uint(3), stats.RecentRepairs[1].ID)
	assert.Equal(t, uint(2), stats.RecentRepairs[2].ID)
}

func TestComputeStatsRevenuePolicy(t *testing.T) {
	snap := sampleSnapshot()

	rentOnly := ComputeStats(snap, RevenuePolicy{IncludeMaintenanceFee: false}, testNow)
	assert.Equal(t, int64(170000), rentOnly.TotalMonthlyRevenue)

	// 含管理费口径：入住房间的管理费计入月度收入
	withFee := ComputeStats(snap, RevenuePolicy{IncludeMaintenanceFee: true}, testNow)
	assert.Equal(t, int64(170000+5000+6000), withFee.TotalMonthlyRevenue)
}

func TestComputeStatsEmptySnapshot(t *testing.T) {
	stats := ComputeStats(&Snapshot{}, RevenuePolicy{}, testNow)

	// 空集合下所有数值为0，不出现除零
	assert.Equal(t, 0, stats.TotalRooms)
	assert.Equal(t, 0, stats.AverageOccupancy)
	assert.Equal(t, int64(0), stats.TotalMonthlyRevenue)
	assert.Equal(t, 0, stats.ActiveContracts)
	assert.NotNil(t, stats.RecentRepairs)
	assert.Empty(t, stats.RecentRepairs)
}

func TestComputeStatsOrderInvariant(t *testing.T) {
	base := ComputeStats(sampleSnapshot(), RevenuePolicy{}, testNow)

	r := rand.New(rand.NewSource(7))
	for trial := 0; trial < 10; trial++ {
		snap := sampleSnapshot()
		r.Shuffle(len(snap.Rooms), func(i, j int) { snap.Rooms[i], snap.Rooms[j] = snap.Rooms[j], snap.Rooms[i] })
		r.Shuffle(len(snap.Contracts), func(i, j int) { snap.Contracts[i], snap.Contracts[j] = snap.Contracts[j], snap.Contracts[i] })
		r.Shuffle(len(snap.Repairs), func(i, j int) { snap.Repairs[i], snap.Repairs[j] = snap.Repairs[j], snap.Repairs[i] })

		got := ComputeStats(snap, RevenuePolicy{}, testNow)
		assert.Equal(t, base, got, "trial %d", trial)
	}
}

func TestComputeStatsDoesNotMutateSnapshot(t *testing.T) {
	snap := sampleSnapshot()
	firstID := snap.Repairs[0].ID

	_ = ComputeStats(snap, RevenuePolicy{}, testNow)

	// 输入集合不被排序或修改
	assert.Equal(t, firstID, snap.Repairs[0].ID)
	assert.Len(t, snap.Repairs, 3)
}

func TestComputeStatsIdempotent(t *testing.T) {
	snap := sampleSnapshot()
	first := ComputeStats(snap, RevenuePolicy{}, testNow)
	second := ComputeStats(snap, RevenuePolicy{}, testNow)
	assert.Equal(t, first, second)
}

func TestRecentRepairsLimit(t *testing.T) {
	repairs := make([]models.Repair, 0, RecentRepairLimit+3)
	for i := 0; i < RecentRepairLimit+3; i++ {
		repairs = append(repairs, models.Repair{
			BaseModel:   models.BaseModel{ID: uint(i + 1)},
			Status:      models.RepairStatusPending,
			RequestDate: datePtr(testNow.AddDate(0, 0, -i)),
		})
	}

	stats := ComputeStats(&Snapshot{Repairs: repairs}, RevenuePolicy{}, testNow)
	require.Len(t, stats.RecentRepairs, RecentRepairLimit)
	assert.Equal(t, uint(1), stats.RecentRepairs[0].ID)
}

// 数据源不可用时仪表盘降级为零值统计
func TestGetStatsFallsBackToZeroOnFetchError(t *testing.T) {
	// 未迁移任何表的空库，所有查询都会失败
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	service := NewDashboardServiceWithDB(db, RevenuePolicy{})
	stats := service.GetStats(AdminScope())

	require.NotNil(t, stats)
	assert.Equal(t, 0, stats.TotalProperties)
	assert.Equal(t, 0, stats.TotalRooms)
	assert.Equal(t, 0, stats.AverageOccupancy)
	assert.Equal(t, int64(0), stats.TotalMonthlyRevenue)
	assert.Equal(t, int64(0), stats.UnreadRequests)
	assert.NotNil(t, stats.RecentRepairs)
	assert.Empty(t, stats.RecentRepairs)
}

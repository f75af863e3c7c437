package services

import (
	"math"
	"sort"
	"time"

	"pmp/internal/database"
	"pmp/internal/models"
	"pmp/pkg/config"
	"pmp/pkg/logger"

	"gorm.io/gorm"
)

// RecentRepairLimit 仪表盘展示的最近维修条数
const RecentRepairLimit = 5

// RevenuePolicy 月度收入统计口径（显式命名，避免隐式选择）
type RevenuePolicy struct {
	IncludeMaintenanceFee bool
}

// Snapshot 实体集合的一致性快照
// 统计计算只读取快照，不修改任何集合
type Snapshot struct {
	Properties     []models.Property
	Rooms          []models.Room
	Residents      []models.Resident
	Contracts      []models.Contract // 需预加载步骤
	Repairs        []models.Repair
	UnreadRequests int64
}

// DashboardStats 仪表盘统计结果
// 所有数值字段在空集合下为0，RecentRepairs 恒为非nil切片
type DashboardStats struct {
	TotalProperties     int             `json:"total_properties"`
	TotalRooms          int             `json:"total_rooms"`
	OccupiedRooms       int             `json:"occupied_rooms"`
	AverageOccupancy    int             `json:"average_occupancy"` // 百分比，四舍五入
	TotalResidents      int             `json:"total_residents"`
	ActiveContracts     int             `json:"active_contracts"`
	TotalMonthlyRevenue int64           `json:"total_monthly_revenue"`
	PendingRepairs      int             `json:"pending_repairs"`
	UrgentRepairs       int             `json:"urgent_repairs"`
	UnreadRequests      int64           `json:"unread_requests"`
	ExpiringContracts   int             `json:"expiring_contracts"`
	RecentRepairs       []models.Repair `json:"recent_repairs"`
}

// ZeroStats 零值统计结果（数据源不可用时的降级返回）
func ZeroStats() *DashboardStats {
	return &DashboardStats{
		RecentRepairs: []models.Repair{},
	}
}

// ComputeStats 从快照计算仪表盘统计
// 纯函数：同一快照重复计算结果一致，且与集合内元素顺序无关
func ComputeStats(snap *Snapshot, policy RevenuePolicy, now time.Time) *DashboardStats {
	stats := ZeroStats()

	stats.TotalProperties = len(snap.Properties)
	stats.TotalRooms = len(snap.Rooms)
	stats.TotalResidents = len(snap.Residents)
	stats.UnreadRequests = snap.UnreadRequests

	for _, room := range snap.Rooms {
		if room.IsOccupied {
			stats.OccupiedRooms++
			stats.TotalMonthlyRevenue += room.MonthlyRent
			if policy.IncludeMaintenanceFee {
				stats.TotalMonthlyRevenue += room.MaintenanceFee
			}
		}
	}

	// 空房间集合时入住率为0，避免除零
	if stats.TotalRooms > 0 {
		stats.AverageOccupancy = int(math.Round(
			float64(stats.OccupiedRooms) / float64(stats.TotalRooms) * 100))
	}

	for i := range snap.Contracts {
		contract := &snap.Contracts[i]
		if contract.IsActive() {
			stats.ActiveContracts++
		}
		if contract.ExpiresWithin(now, ExpiryMonths) {
			stats.ExpiringContracts++
		}
	}

	for _, repair := range snap.Repairs {
		if repair.IsOpen() {
			stats.PendingRepairs++
		}
		if repair.IsUrgent && repair.Status != models.RepairStatusCompleted {
			stats.UrgentRepairs++
		}
	}

	stats.RecentRepairs = recentRepairs(snap.Repairs, RecentRepairLimit)

	return stats
}

// recentRepairs 按申请日期降序取最近N条
// 复制后排序，不改变输入集合；日期相同按ID降序保证结果确定
func recentRepairs(repairs []models.Repair, limit int) []models.Repair {
	sorted := make([]models.Repair, len(repairs))
	copy(sorted, repairs)

	sort.Slice(sorted, func(i, j int) bool {
		ti := repairTime(&sorted[i])
		tj := repairTime(&sorted[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return sorted[i].ID > sorted[j].ID
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func repairTime(r *models.Repair) time.Time {
	if r.RequestDate == nil {
		return time.Time{}
	}
	return *r.RequestDate
}

// DashboardService 仪表盘统计服务
type DashboardService struct {
	db     *gorm.DB
	policy RevenuePolicy
}

func NewDashboardService() *DashboardService {
	cfg := config.GetConfig()
	return &DashboardService{
		db: database.GetDB(),
		policy: RevenuePolicy{
			IncludeMaintenanceFee: cfg.Revenue.IncludeMaintenanceFee,
		},
	}
}

// NewDashboardServiceWithDB 指定数据库实例与口径创建（测试用）
func NewDashboardServiceWithDB(db *gorm.DB, policy RevenuePolicy) *DashboardService {
	return &DashboardService{db: db, policy: policy}
}

// loadSnapshot 按范围加载实体集合快照
func (s *DashboardService) loadSnapshot(scope *Scope) (*Snapshot, error) {
	snap := &Snapshot{}

	if err := ScopeProperties(s.db.Model(&models.Property{}), scope).
		Find(&snap.Properties).Error; err != nil {
		return nil, err
	}
	if err := ScopeRooms(s.db.Model(&models.Room{}), scope).
		Find(&snap.Rooms).Error; err != nil {
		return nil, err
	}
	if err := ScopeResidents(s.db.Model(&models.Resident{}), scope).
		Find(&snap.Residents).Error; err != nil {
		return nil, err
	}
	if err := ScopeContracts(s.db.Model(&models.Contract{}), scope).
		Preload("Steps").Find(&snap.Contracts).Error; err != nil {
		return nil, err
	}
	if err := ScopeRepairs(s.db.Model(&models.Repair{}), scope).
		Preload("Room").Find(&snap.Repairs).Error; err != nil {
		return nil, err
	}
	if err := ScopeRequests(s.db.Model(&models.ResidentRequest{}), scope).
		Where("status = ?", models.RequestStatusPending).
		Count(&snap.UnreadRequests).Error; err != nil {
		return nil, err
	}

	return snap, nil
}

// GetStats 获取范围内的仪表盘统计
// 数据源不可用时降级为零值统计，只做诊断性日志，不向上抛错，保证仪表盘可渲染
func (s *DashboardService) GetStats(scope *Scope) *DashboardStats {
	snap, err := s.loadSnapshot(scope)
	if err != nil {
		logger.GetLogger().Errorf("加载仪表盘数据失败，降级为零值统计: %v", err)
		return ZeroStats()
	}
	return ComputeStats(snap, s.policy, time.Now())
}

// PropertyFinance 物业维度的财务明细
type PropertyFinance struct {
	PropertyID     uint   `json:"property_id"`
	PropertyName   string `json:"property_name"`
	RoomCount      int    `json:"room_count"`
	OccupiedRooms  int    `json:"occupied_rooms"`
	OccupancyRate  int    `json:"occupancy_rate"` // 百分比，四舍五入
	MonthlyRevenue int64  `json:"monthly_revenue"`
}

// FinanceSummary 财务汇总（管理员财务视图）
type FinanceSummary struct {
	TotalMonthlyRevenue int64             `json:"total_monthly_revenue"`
	RentTotal           int64             `json:"rent_total"`
	MaintenanceFeeTotal int64             `json:"maintenance_fee_total"`
	CompletedRepairCost int64             `json:"completed_repair_cost"`
	Properties          []PropertyFinance `json:"properties"`
}

// GetFinanceSummary 计算财务汇总
func (s *DashboardService) GetFinanceSummary(scope *Scope) (*FinanceSummary, error) {
	snap, err := s.loadSnapshot(scope)
	if err != nil {
		return nil, err
	}

	summary := &FinanceSummary{Properties: []PropertyFinance{}}

	byProperty := make(map[uint]*PropertyFinance)
	for _, p := range snap.Properties {
		byProperty[p.ID] = &PropertyFinance{
			PropertyID:   p.ID,
			PropertyName: p.Name,
		}
	}

	for _, room := range snap.Rooms {
		pf := byProperty[room.PropertyID]
		if pf == nil {
			continue
		}
		pf.RoomCount++
		if room.IsOccupied {
			pf.OccupiedRooms++
			pf.MonthlyRevenue += room.MonthlyRent
			summary.RentTotal += room.MonthlyRent
			summary.MaintenanceFeeTotal += room.MaintenanceFee
			if s.policy.IncludeMaintenanceFee {
				pf.MonthlyRevenue += room.MaintenanceFee
			}
		}
	}

	summary.TotalMonthlyRevenue = summary.RentTotal
	if s.policy.IncludeMaintenanceFee {
		summary.TotalMonthlyRevenue += summary.MaintenanceFeeTotal
	}

	for _, repair := range snap.Repairs {
		if repair.Status == models.RepairStatusCompleted {
			summary.CompletedRepairCost += repair.Cost
		}
	}

	// 按物业ID排序输出，保证结果稳定
	ids := make([]uint, 0, len(byProperty))
	for id := range byProperty {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		pf := byProperty[id]
		if pf.RoomCount > 0 {
			pf.OccupancyRate = int(math.Round(
				float64(pf.OccupiedRooms) / float64(pf.RoomCount) * 100))
		}
		summary.Properties = append(summary.Properties, *pf)
	}

	return summary, nil
}

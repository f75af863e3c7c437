package services

import (
	"fmt"
	"time"

	"pmp/internal/database"
	"pmp/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RepairService struct {
	db *gorm.DB
}

func NewRepairService() *RepairService {
	return &RepairService{
		db: database.GetDB(),
	}
}

// NewRepairServiceWithDB 指定数据库实例创建（测试用）
func NewRepairServiceWithDB(db *gorm.DB) *RepairService {
	return &RepairService{db: db}
}

// RepairInput 维修写入参数
type RepairInput struct {
	RoomID      *uint
	Title       string
	Description string
	Cost        int64
	IsUrgent    bool
}

// Create 创建维修记录
func (s *RepairService) Create(scope *Scope, in *RepairInput) (*models.Repair, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("维修内容不能为空")
	}
	if in.Cost < 0 {
		return nil, fmt.Errorf("维修费用不能为负数")
	}

	if in.RoomID != nil {
		var room models.Room
		if err := s.db.First(&room, *in.RoomID).Error; err != nil {
			return nil, fmt.Errorf("房间不存在")
		}
		if !scope.Allows(room.PropertyID) {
			return nil, ErrScopeDenied
		}
	}

	now := time.Now()
	repair := &models.Repair{
		TicketNo:    uuid.New().String(),
		RoomID:      in.RoomID,
		Title:       in.Title,
		Description: in.Description,
		Status:      models.RepairStatusPending,
		Cost:        in.Cost,
		IsUrgent:    in.IsUrgent,
		RequestDate: &now,
	}

	if err := s.db.Create(repair).Error; err != nil {
		return nil, fmt.Errorf("创建维修记录失败: %v", err)
	}

	return repair, nil
}

// GetByID 根据ID获取维修记录
func (s *RepairService) GetByID(scope *Scope, id uint) (*models.Repair, error) {
	var repair models.Repair
	err := s.db.Preload("Room").First(&repair, id).Error
	if err != nil {
		return nil, err
	}
	if repair.Room != nil && !scope.Allows(repair.Room.PropertyID) {
		return nil, gorm.ErrRecordNotFound
	}
	if repair.Room == nil && !scope.All {
		// 未关联房间的维修记录只对管理员可见
		return nil, gorm.ErrRecordNotFound
	}
	return &repair, nil
}

// List 按范围获取维修列表，可按状态过滤
func (s *RepairService) List(scope *Scope, status string, offset, limit int) ([]models.Repair, int64, error) {
	var repairs []models.Repair
	var total int64

	query := ScopeRepairs(s.db.Model(&models.Repair{}), scope)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Room").Order("request_date desc, id desc").
		Offset(offset).Limit(limit).Find(&repairs).Error
	return repairs, total, err
}

// UpdateStatus 更新维修状态与费用
func (s *RepairService) UpdateStatus(scope *Scope, id uint, status string, cost *int64) (*models.Repair, error) {
	switch status {
	case models.RepairStatusPending, models.RepairStatusInProgress, models.RepairStatusCompleted:
	default:
		return nil, fmt.Errorf("未知的维修状态: %s", status)
	}

	repair, err := s.GetByID(scope, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": status}
	if cost != nil {
		if *cost < 0 {
			return nil, fmt.Errorf("维修费用不能为负数")
		}
		updates["cost"] = *cost
	}

	if err := s.db.Model(&models.Repair{}).Where("id = ?", repair.ID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("更新维修记录失败: %v", err)
	}

	return s.GetByID(scope, id)
}

// Delete 删除维修记录
func (s *RepairService) Delete(scope *Scope, id uint) error {
	repair, err := s.GetByID(scope, id)
	if err != nil {
		return err
	}
	return s.db.Delete(&models.Repair{}, repair.ID).Error
}

// ListByRoom 获取指定房间的维修记录（住户门户用）
func (s *RepairService) ListByRoom(roomID uint) ([]models.Repair, error) {
	var repairs []models.Repair
	err := s.db.Where("room_id = ?", roomID).
		Order("request_date desc, id desc").Find(&repairs).Error
	return repairs, err
}

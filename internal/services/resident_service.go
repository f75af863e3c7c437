package services

import (
	"fmt"
	"time"

	"pmp/internal/database"
	"pmp/internal/models"

	"gorm.io/gorm"
)

type ResidentService struct {
	db *gorm.DB
}

func NewResidentService() *ResidentService {
	return &ResidentService{
		db: database.GetDB(),
	}
}

// NewResidentServiceWithDB 指定数据库实例创建（测试用）
func NewResidentServiceWithDB(db *gorm.DB) *ResidentService {
	return &ResidentService{db: db}
}

// ResidentInput 住户写入参数
type ResidentInput struct {
	RoomID     uint
	Name       string
	Phone      *string
	Email      *string
	MoveInDate *time.Time
}

// Create 创建住户并将房间标记为已入住
func (s *ResidentService) Create(scope *Scope, in *ResidentInput) (*models.Resident, error) {
	if in.RoomID == 0 {
		return nil, fmt.Errorf("必须选择入住房间")
	}
	if in.Name == "" {
		return nil, fmt.Errorf("住户姓名不能为空")
	}

	var room models.Room
	if err := s.db.First(&room, in.RoomID).Error; err != nil {
		return nil, fmt.Errorf("房间不存在")
	}
	if !scope.Allows(room.PropertyID) {
		return nil, ErrScopeDenied
	}

	resident := &models.Resident{
		RoomID:     in.RoomID,
		Name:       in.Name,
		Phone:      in.Phone,
		Email:      in.Email,
		MoveInDate: in.MoveInDate,
		IsActive:   true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(resident).Error; err != nil {
			return err
		}
		return tx.Model(&room).Update("is_occupied", true).Error
	})
	if err != nil {
		return nil, fmt.Errorf("创建住户失败: %v", err)
	}

	return resident, nil
}

// GetByID 根据ID获取住户
func (s *ResidentService) GetByID(scope *Scope, id uint) (*models.Resident, error) {
	var resident models.Resident
	err := s.db.Preload("Room").First(&resident, id).Error
	if err != nil {
		return nil, err
	}
	if resident.Room != nil && !scope.Allows(resident.Room.PropertyID) {
		return nil, gorm.ErrRecordNotFound
	}
	return &resident, nil
}

// List 按范围获取住户列表
func (s *ResidentService) List(scope *Scope, offset, limit int) ([]models.Resident, int64, error) {
	var residents []models.Resident
	var total int64

	query := ScopeResidents(s.db.Model(&models.Resident{}), scope)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Room").Order("id").
		Offset(offset).Limit(limit).Find(&residents).Error
	return residents, total, err
}

// Update 更新住户
func (s *ResidentService) Update(scope *Scope, id uint, in *ResidentInput) (*models.Resident, error) {
	resident, err := s.GetByID(scope, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		resident.Name = in.Name
	}
	if in.Phone != nil {
		resident.Phone = in.Phone
	}
	if in.Email != nil {
		resident.Email = in.Email
	}
	if in.MoveInDate != nil {
		resident.MoveInDate = in.MoveInDate
	}

	if err := s.db.Save(resident).Error; err != nil {
		return nil, fmt.Errorf("更新住户失败: %v", err)
	}

	return resident, nil
}

// Deactivate 退去处理：住户停用并释放房间
func (s *ResidentService) Deactivate(scope *Scope, id uint) error {
	resident, err := s.GetByID(scope, id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Resident{}).Where("id = ?", id).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Room{}).Where("id = ?", resident.RoomID).
			Update("is_occupied", false).Error
	})
}

// Delete 删除住户
func (s *ResidentService) Delete(scope *Scope, id uint) error {
	resident, err := s.GetByID(scope, id)
	if err != nil {
		return err
	}

	var count int64
	s.db.Model(&models.Contract{}).Where("resident_id = ?", id).Count(&count)
	if count > 0 {
		return fmt.Errorf("该住户存在合同记录，无法删除")
	}

	return s.db.Delete(&models.Resident{}, resident.ID).Error
}

package services

import (
	"fmt"

	"pmp/internal/database"
	"pmp/internal/models"

	"gorm.io/gorm"
)

type PropertyService struct {
	db *gorm.DB
}

func NewPropertyService() *PropertyService {
	return &PropertyService{
		db: database.GetDB(),
	}
}

// NewPropertyServiceWithDB 指定数据库实例创建（测试用）
func NewPropertyServiceWithDB(db *gorm.DB) *PropertyService {
	return &PropertyService{db: db}
}

// Create 创建物业
func (s *PropertyService) Create(name, address string, totalRoomCount int) (*models.Property, error) {
	if name == "" {
		return nil, fmt.Errorf("物业名称不能为空")
	}

	var count int64
	s.db.Model(&models.Property{}).Where("name = ?", name).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("同名物业已存在")
	}

	property := &models.Property{
		Name:           name,
		Address:        address,
		TotalRoomCount: totalRoomCount,
	}

	if err := s.db.Create(property).Error; err != nil {
		return nil, fmt.Errorf("创建物业失败: %v", err)
	}

	return property, nil
}

// GetByID 根据ID获取物业
func (s *PropertyService) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	err := s.db.First(&property, id).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// List 按范围获取物业列表
func (s *PropertyService) List(scope *Scope, offset, limit int) ([]models.Property, int64, error) {
	var properties []models.Property
	var total int64

	query := ScopeProperties(s.db.Model(&models.Property{}), scope)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id").Offset(offset).Limit(limit).Find(&properties).Error
	return properties, total, err
}

// Update 更新物业
func (s *PropertyService) Update(id uint, name, address string, totalRoomCount int) (*models.Property, error) {
	var property models.Property
	if err := s.db.First(&property, id).Error; err != nil {
		return nil, err
	}

	if name != "" {
		property.Name = name
	}
	if address != "" {
		property.Address = address
	}
	if totalRoomCount > 0 {
		property.TotalRoomCount = totalRoomCount
	}

	if err := s.db.Save(&property).Error; err != nil {
		return nil, fmt.Errorf("更新物业失败: %v", err)
	}

	return &property, nil
}

// Delete 删除物业
func (s *PropertyService) Delete(id uint) error {
	var count int64
	s.db.Model(&models.Room{}).Where("property_id = ?", id).Count(&count)
	if count > 0 {
		return fmt.Errorf("该物业下仍有房间，无法删除")
	}

	return s.db.Delete(&models.Property{}, id).Error
}

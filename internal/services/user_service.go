package services

import (
	"errors"
	"fmt"
	"time"

	"pmp/internal/database"
	"pmp/internal/models"
	"pmp/internal/portal"

	"gorm.io/gorm"
)

// 业务错误哨兵，供处理层映射到对应的门户错误码
var (
	ErrAccountDisabled = errors.New("账号已被禁用")
	ErrScopeDenied     = errors.New("无权操作该物业")
)

type UserService struct {
	db *gorm.DB
}

func NewUserService() *UserService {
	return &UserService{
		db: database.GetDB(),
	}
}

// NewUserServiceWithDB 指定数据库实例创建（测试用）
func NewUserServiceWithDB(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetByID 根据ID获取用户
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据用户名获取用户
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Validate 实现 portal.CredentialValidator
// 按 (角色, 用户名, 密码) 校验登录；住户角色额外要求住户记录处于在住状态
func (s *UserService) Validate(role, username, password string) error {
	var user models.User
	err := s.db.Where("username = ? AND role = ?", username, role).First(&user).Error
	if err != nil {
		return fmt.Errorf("用户名或密码错误")
	}

	if !user.CheckPassword(password) {
		return fmt.Errorf("用户名或密码错误")
	}

	if !user.IsActive() {
		return ErrAccountDisabled
	}

	if role == models.RoleResident {
		if user.ResidentID == nil {
			return fmt.Errorf("该账号未开通住户门户")
		}
		var resident models.Resident
		if err := s.db.First(&resident, *user.ResidentID).Error; err != nil {
			return fmt.Errorf("住户记录不存在")
		}
		if !resident.IsActive {
			return ErrAccountDisabled
		}
	}

	return nil
}

// CreateResidentAccount 为住户开通门户账号
// 一个住户只能有一个账号
func (s *UserService) CreateResidentAccount(user *models.User) error {
	if user.Role != models.RoleResident || user.ResidentID == nil {
		return fmt.Errorf("账号必须关联住户")
	}

	var count int64
	s.db.Model(&models.User{}).Where("username = ?", user.Username).Count(&count)
	if count > 0 {
		return fmt.Errorf("用户名已被使用")
	}

	s.db.Model(&models.User{}).Where("resident_id = ?", *user.ResidentID).Count(&count)
	if count > 0 {
		return fmt.Errorf("该住户已开通账号")
	}

	return s.db.Create(user).Error
}

// UpdateLastLogin 更新最后登录时间
func (s *UserService) UpdateLastLogin(id uint) error {
	now := time.Now()
	return s.db.Model(&models.User{}).Where("id = ?", id).Update("last_login_at", &now).Error
}

// ScopeFor 解析用户的数据可见范围
func (s *UserService) ScopeFor(user *models.User) (*Scope, error) {
	if user.Role == models.RoleAdmin {
		return AdminScope(), nil
	}

	var assignments []models.PropertyAssignment
	if err := s.db.Where("user_id = ?", user.ID).Find(&assignments).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.PropertyID)
	}
	return &Scope{PropertyIDs: ids}, nil
}

// AssignProperty 将物业分配给经理
func (s *UserService) AssignProperty(userID, propertyID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return fmt.Errorf("用户不存在")
	}
	if user.Role != models.RoleManager {
		return fmt.Errorf("只能给物业经理分配物业")
	}

	var property models.Property
	if err := s.db.First(&property, propertyID).Error; err != nil {
		return fmt.Errorf("物业不存在")
	}

	var count int64
	s.db.Model(&models.PropertyAssignment{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).Count(&count)
	if count > 0 {
		return fmt.Errorf("该物业已分配给此经理")
	}

	return s.db.Create(&models.PropertyAssignment{
		UserID:     userID,
		PropertyID: propertyID,
	}).Error
}

// UnassignProperty 取消经理的物业分配
func (s *UserService) UnassignProperty(userID, propertyID uint) error {
	return s.db.Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&models.PropertyAssignment{}).Error
}

// GetStaffUsers 获取全部后台用户（用于发送通知）
func (s *UserService) GetStaffUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.Where("role IN ? AND status = ?",
		[]string{models.RoleAdmin, models.RoleManager}, models.UserStatusActive).
		Find(&users).Error
	return users, err
}

// GetStaffUsersForProperty 获取可见指定物业的后台用户
// 管理员全部可见，经理按分配关系过滤
func (s *UserService) GetStaffUsersForProperty(propertyID uint) ([]models.User, error) {
	var admins []models.User
	if err := s.db.Where("role = ? AND status = ?", models.RoleAdmin, models.UserStatusActive).
		Find(&admins).Error; err != nil {
		return nil, err
	}

	var managers []models.User
	sub := s.db.Model(&models.PropertyAssignment{}).Select("user_id").
		Where("property_id = ?", propertyID)
	if err := s.db.Where("role = ? AND status = ? AND id IN (?)",
		models.RoleManager, models.UserStatusActive, sub).
		Find(&managers).Error; err != nil {
		return nil, err
	}

	return append(admins, managers...), nil
}

// 编译期检查：UserService 满足凭证校验接口
var _ portal.CredentialValidator = (*UserService)(nil)

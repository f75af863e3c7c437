package services

import (
	"fmt"

	"pmp/internal/database"
	"pmp/internal/models"
	"pmp/pkg/logger"

	"gorm.io/gorm"
)

type RequestService struct {
	db              *gorm.DB
	userService     *UserService
	notificationSvc *NotificationService
}

func NewRequestService() *RequestService {
	return &RequestService{
		db:              database.GetDB(),
		userService:     NewUserService(),
		notificationSvc: NewNotificationService(),
	}
}

// NewRequestServiceWithDB 指定数据库实例创建（测试用）
func NewRequestServiceWithDB(db *gorm.DB) *RequestService {
	return &RequestService{
		db:              db,
		userService:     NewUserServiceWithDB(db),
		notificationSvc: NewNotificationServiceWithDB(db),
	}
}

// Submit 住户提交申请
// 成功后向可见该物业的后台用户发送通知；通知失败只记录日志
func (s *RequestService) Submit(residentID uint, category, title, content string) (*models.ResidentRequest, error) {
	if title == "" {
		return nil, fmt.Errorf("申请标题不能为空")
	}

	var resident models.Resident
	if err := s.db.Preload("Room").First(&resident, residentID).Error; err != nil {
		return nil, fmt.Errorf("住户不存在")
	}

	request := &models.ResidentRequest{
		ResidentID: residentID,
		Category:   category,
		Title:      title,
		Content:    content,
		Status:     models.RequestStatusPending,
	}

	if err := s.db.Create(request).Error; err != nil {
		return nil, fmt.Errorf("提交申请失败: %v", err)
	}

	// 通知负责该物业的后台用户
	if resident.Room != nil {
		staff, err := s.userService.GetStaffUsersForProperty(resident.Room.PropertyID)
		if err != nil {
			logger.GetLogger().Warnf("查询通知对象失败: %v", err)
		} else {
			for _, u := range staff {
				if _, err := s.notificationSvc.Notify(u.ID, models.NotifyTypeResidentRequest,
					"新的住户申请: "+title, fmt.Sprintf("住户 %s 提交了申请", resident.Name)); err != nil {
					logger.GetLogger().Warnf("发送申请通知失败: %v", err)
				}
			}
		}
	}

	return request, nil
}

// GetByID 根据ID获取申请
func (s *RequestService) GetByID(scope *Scope, id uint) (*models.ResidentRequest, error) {
	var request models.ResidentRequest
	err := s.db.Preload("Resident.Room").First(&request, id).Error
	if err != nil {
		return nil, err
	}
	if request.Resident != nil && request.Resident.Room != nil &&
		!scope.Allows(request.Resident.Room.PropertyID) {
		return nil, gorm.ErrRecordNotFound
	}
	return &request, nil
}

// List 按范围获取申请列表，可按状态过滤
func (s *RequestService) List(scope *Scope, status string, offset, limit int) ([]models.ResidentRequest, int64, error) {
	var requests []models.ResidentRequest
	var total int64

	query := ScopeRequests(s.db.Model(&models.ResidentRequest{}), scope)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Resident").Order("id desc").
		Offset(offset).Limit(limit).Find(&requests).Error
	return requests, total, err
}

// ListByResident 获取住户自己的申请列表
func (s *RequestService) ListByResident(residentID uint) ([]models.ResidentRequest, error) {
	var requests []models.ResidentRequest
	err := s.db.Where("resident_id = ?", residentID).
		Order("id desc").Find(&requests).Error
	return requests, err
}

// Acknowledge 确认申请（未读 → 处理中）
func (s *RequestService) Acknowledge(scope *Scope, id uint) (*models.ResidentRequest, error) {
	request, err := s.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestStatusPending {
		return nil, fmt.Errorf("该申请已被确认")
	}

	if err := s.db.Model(&models.ResidentRequest{}).Where("id = ?", request.ID).
		Update("status", models.RequestStatusInProgress).Error; err != nil {
		return nil, fmt.Errorf("确认申请失败: %v", err)
	}

	return s.GetByID(scope, id)
}

// Resolve 办结申请
func (s *RequestService) Resolve(scope *Scope, id uint) (*models.ResidentRequest, error) {
	request, err := s.GetByID(scope, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.ResidentRequest{}).Where("id = ?", request.ID).
		Update("status", models.RequestStatusResolved).Error; err != nil {
		return nil, fmt.Errorf("办结申请失败: %v", err)
	}

	return s.GetByID(scope, id)
}

// UnreadCount 未读（未确认）申请数
func (s *RequestService) UnreadCount(scope *Scope) (int64, error) {
	var count int64
	err := ScopeRequests(s.db.Model(&models.ResidentRequest{}), scope).
		Where("status = ?", models.RequestStatusPending).Count(&count).Error
	return count, err
}

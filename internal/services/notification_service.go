package services

import (
	"fmt"

	"pmp/internal/database"
	"pmp/internal/models"
	"pmp/pkg/logger"
	"pmp/pkg/queue"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService struct {
	db       *gorm.DB
	notifier *queue.RedisNotifier
}

func NewNotificationService() *NotificationService {
	return &NotificationService{
		db:       database.GetDB(),
		notifier: database.GetNotifier(),
	}
}

// NewNotificationServiceWithDB 指定数据库实例创建（测试用，不连Redis）
func NewNotificationServiceWithDB(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Notify 创建通知并推送到用户频道
// 实时推送失败只记录日志，不影响通知落库
func (s *NotificationService) Notify(userID uint, notifyType, title, content string) (*models.Notification, error) {
	notification := &models.Notification{
		MessageID: uuid.New().String(),
		UserID:    userID,
		Type:      notifyType,
		Title:     title,
		Content:   content,
	}

	if err := s.db.Create(notification).Error; err != nil {
		return nil, fmt.Errorf("创建通知失败: %v", err)
	}

	if s.notifier != nil {
		if err := s.notifier.Publish(notification.MessageID, userID, notifyType, title, content); err != nil {
			logger.GetLogger().Warnf("通知实时推送失败: %v", err)
		}
	}

	return notification, nil
}

// NotifyMany 向多个用户发送同一通知
func (s *NotificationService) NotifyMany(userIDs []uint, notifyType, title, content string) error {
	for _, id := range userIDs {
		if _, err := s.Notify(id, notifyType, title, content); err != nil {
			return err
		}
	}
	return nil
}

// ListByUser 获取用户的通知列表
func (s *NotificationService) ListByUser(userID uint, unreadOnly bool, offset, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	query := s.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id desc").Offset(offset).Limit(limit).Find(&notifications).Error
	return notifications, total, err
}

// UnreadCount 用户未读通知数
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).Count(&count).Error
	return count, err
}

// MarkRead 标记单条通知已读
func (s *NotificationService) MarkRead(userID, id uint) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAllRead 标记用户全部通知已读
func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// HasNotifiedToday 当天是否已就同一事项通知过该用户（用于到期提醒去重）
func (s *NotificationService) HasNotifiedToday(userID uint, notifyType, title string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ? AND title = ? AND created_at >= CURRENT_DATE",
			userID, notifyType, title).
		Count(&count).Error
	return count > 0, err
}

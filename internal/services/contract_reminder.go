package services

import (
	"fmt"
	"time"

	"pmp/internal/models"
	"pmp/pkg/logger"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ContractReminderScheduler 合同到期提醒调度器
// 每天凌晨扫描6个月内到期的合同，向负责该物业的后台用户发送提醒
type ContractReminderScheduler struct {
	db              *gorm.DB
	cron            *cron.Cron
	contractService *ContractService
	userService     *UserService
	notificationSvc *NotificationService
	running         bool
}

// NewContractReminderScheduler 创建合同到期提醒调度器
func NewContractReminderScheduler(db *gorm.DB) *ContractReminderScheduler {
	return &ContractReminderScheduler{
		db:              db,
		cron:            cron.New(),
		contractService: NewContractServiceWithDB(db),
		userService:     NewUserServiceWithDB(db),
		notificationSvc: NewNotificationService(),
	}
}

// Start 启动调度器
func (s *ContractReminderScheduler) Start() error {
	if s.running {
		return fmt.Errorf("调度器已经在运行")
	}

	logger.GetLogger().Info("启动合同到期提醒调度器")

	// 每天03:00执行
	if _, err := s.cron.AddFunc("0 3 * * *", s.RunOnce); err != nil {
		return fmt.Errorf("注册定时任务失败: %v", err)
	}

	s.cron.Start()
	s.running = true
	return nil
}

// Stop 停止调度器
func (s *ContractReminderScheduler) Stop() {
	if !s.running {
		return
	}
	logger.GetLogger().Info("停止合同到期提醒调度器")
	s.cron.Stop()
	s.running = false
}

// RunOnce 执行一次到期扫描
func (s *ContractReminderScheduler) RunOnce() {
	appLogger := logger.GetLogger()

	contracts, err := s.contractService.ExpiringWithin(AdminScope(), time.Now(), ExpiryMonths)
	if err != nil {
		appLogger.Errorf("扫描到期合同失败: %v", err)
		return
	}

	notified := 0
	for i := range contracts {
		contract := &contracts[i]
		if contract.Resident == nil || contract.Resident.Room == nil || contract.EndDate == nil {
			continue
		}

		title := fmt.Sprintf("合同即将到期: %s", contract.Resident.Name)
		content := fmt.Sprintf("住户 %s 的合同将于 %s 到期，请及时处理续约",
			contract.Resident.Name, contract.EndDate.Format("2006-01-02"))

		staff, err := s.userService.GetStaffUsersForProperty(contract.Resident.Room.PropertyID)
		if err != nil {
			appLogger.Errorf("查询通知对象失败: %v", err)
			continue
		}

		for _, u := range staff {
			// 同一合同同一天只提醒一次
			already, err := s.notificationSvc.HasNotifiedToday(u.ID, models.NotifyTypeContractExpiry, title)
			if err != nil {
				appLogger.Errorf("检查提醒记录失败: %v", err)
				continue
			}
			if already {
				continue
			}
			if _, err := s.notificationSvc.Notify(u.ID, models.NotifyTypeContractExpiry, title, content); err != nil {
				appLogger.Errorf("发送到期提醒失败: %v", err)
				continue
			}
			notified++
		}
	}

	appLogger.Infof("合同到期扫描完成，发送提醒 %d 条", notified)
}

package services

import (
	"fmt"
	"time"

	"pmp/internal/database"
	"pmp/internal/models"

	"gorm.io/gorm"
)

// ExpiryMonths 合同到期提醒窗口（自然月）
const ExpiryMonths = 6

type ContractService struct {
	db *gorm.DB
}

func NewContractService() *ContractService {
	return &ContractService{
		db: database.GetDB(),
	}
}

// NewContractServiceWithDB 指定数据库实例创建（测试用）
func NewContractServiceWithDB(db *gorm.DB) *ContractService {
	return &ContractService{db: db}
}

// ContractInput 合同写入参数
type ContractInput struct {
	ResidentID uint
	StartDate  *time.Time
	EndDate    *time.Time
	StepNames  []string // 办理步骤名称（有序）
}

// 缺省办理步骤
var defaultStepNames = []string{"申込", "審査", "契約書作成", "契約締結"}

// Create 创建合同及其办理步骤
func (s *ContractService) Create(scope *Scope, in *ContractInput) (*models.Contract, error) {
	if in.ResidentID == 0 {
		return nil, fmt.Errorf("必须选择住户")
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, fmt.Errorf("合同结束日期不能早于开始日期")
	}

	var resident models.Resident
	if err := s.db.Preload("Room").First(&resident, in.ResidentID).Error; err != nil {
		return nil, fmt.Errorf("住户不存在")
	}
	if resident.Room != nil && !scope.Allows(resident.Room.PropertyID) {
		return nil, ErrScopeDenied
	}

	stepNames := in.StepNames
	if len(stepNames) == 0 {
		stepNames = defaultStepNames
	}

	contract := &models.Contract{
		ResidentID: in.ResidentID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contract).Error; err != nil {
			return err
		}
		for i, name := range stepNames {
			step := &models.ContractStep{
				ContractID: contract.ID,
				Seq:        i + 1,
				Name:       name,
				Status:     models.StepStatusPending,
			}
			if err := tx.Create(step).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("创建合同失败: %v", err)
	}

	return s.GetByID(scope, contract.ID)
}

// GetByID 根据ID获取合同（含步骤）
func (s *ContractService) GetByID(scope *Scope, id uint) (*models.Contract, error) {
	var contract models.Contract
	err := s.db.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	}).Preload("Resident.Room").First(&contract, id).Error
	if err != nil {
		return nil, err
	}
	if contract.Resident != nil && contract.Resident.Room != nil &&
		!scope.Allows(contract.Resident.Room.PropertyID) {
		return nil, gorm.ErrRecordNotFound
	}
	return &contract, nil
}

// List 按范围获取合同列表
func (s *ContractService) List(scope *Scope, offset, limit int) ([]models.Contract, int64, error) {
	var contracts []models.Contract
	var total int64

	query := ScopeContracts(s.db.Model(&models.Contract{}), scope)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	}).Preload("Resident").Order("id").
		Offset(offset).Limit(limit).Find(&contracts).Error
	return contracts, total, err
}

// UpdateStepStatus 更新办理步骤状态
func (s *ContractService) UpdateStepStatus(scope *Scope, contractID, stepID uint, status string) (*models.Contract, error) {
	switch status {
	case models.StepStatusPending, models.StepStatusInProgress, models.StepStatusCompleted:
	default:
		return nil, fmt.Errorf("未知的步骤状态: %s", status)
	}

	contract, err := s.GetByID(scope, contractID)
	if err != nil {
		return nil, err
	}

	var step models.ContractStep
	if err := s.db.Where("id = ? AND contract_id = ?", stepID, contract.ID).
		First(&step).Error; err != nil {
		return nil, fmt.Errorf("步骤不存在")
	}

	if err := s.db.Model(&step).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("更新步骤失败: %v", err)
	}

	return s.GetByID(scope, contractID)
}

// UpdateDates 更新合同起止日期
func (s *ContractService) UpdateDates(scope *Scope, id uint, start, end *time.Time) (*models.Contract, error) {
	contract, err := s.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, fmt.Errorf("合同结束日期不能早于开始日期")
	}

	updates := map[string]interface{}{}
	if start != nil {
		updates["start_date"] = start
	}
	if end != nil {
		updates["end_date"] = end
	}
	if len(updates) > 0 {
		if err := s.db.Model(&models.Contract{}).Where("id = ?", contract.ID).
			Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("更新合同失败: %v", err)
		}
	}

	return s.GetByID(scope, id)
}

// Delete 删除合同
func (s *ContractService) Delete(scope *Scope, id uint) error {
	contract, err := s.GetByID(scope, id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contract_id = ?", contract.ID).
			Delete(&models.ContractStep{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Contract{}, contract.ID).Error
	})
}

// StatusForResident 获取住户的合同派生状态
// 没有任何合同时返回 no_contract
func (s *ContractService) StatusForResident(residentID uint) (string, error) {
	var contracts []models.Contract
	err := s.db.Preload("Steps").Where("resident_id = ?", residentID).
		Order("id desc").Find(&contracts).Error
	if err != nil {
		return "", err
	}
	if len(contracts) == 0 {
		return models.ContractStatusNone, nil
	}
	return contracts[0].DerivedStatus(), nil
}

// ListByResident 获取住户自己的合同列表（住户门户用）
func (s *ContractService) ListByResident(residentID uint) ([]models.Contract, error) {
	var contracts []models.Contract
	err := s.db.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	}).Where("resident_id = ?", residentID).
		Order("id desc").Find(&contracts).Error
	return contracts, err
}

// ExpiringWithin 查询指定月数内到期的合同
// 截止点与 Contract.ExpiresWithin 一致，按日历月计算
func (s *ContractService) ExpiringWithin(scope *Scope, now time.Time, months int) ([]models.Contract, error) {
	var contracts []models.Contract
	query := ScopeContracts(s.db.Model(&models.Contract{}), scope)
	err := query.Preload("Resident.Room").
		Where("end_date IS NOT NULL AND end_date >= ? AND end_date < ?", now, now.AddDate(0, months, 0)).
		Order("end_date").Find(&contracts).Error
	return contracts, err
}

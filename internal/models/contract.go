package models

import (
	"time"
)

// Contract 合同模型
// 合同整体状态不落库，由步骤序列派生（见 DerivedStatus）
type Contract struct {
	BaseModel
	ResidentID uint       `json:"resident_id" gorm:"not null;index"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date" gorm:"index"`

	Resident *Resident      `gorm:"foreignKey:ResidentID" json:"resident,omitempty"`
	Steps    []ContractStep `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"steps,omitempty"`
}

// TableName 表名
func (c *Contract) TableName() string {
	return "contracts"
}

// ContractStep 合同办理步骤
type ContractStep struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ContractID uint   `gorm:"not null;index" json:"contract_id"`
	Seq        int    `gorm:"not null" json:"seq"` // 步骤顺序
	Name       string `gorm:"size:100" json:"name"`
	Status     string `gorm:"not null;size:20;default:'pending'" json:"status"`
}

// TableName 表名
func (s *ContractStep) TableName() string {
	return "contract_steps"
}

// 步骤/合同状态常量
const (
	StepStatusPending    = "pending"
	StepStatusInProgress = "in_progress"
	StepStatusCompleted  = "completed"

	ContractStatusPending    = "pending"
	ContractStatusInProgress = "in_progress"
	ContractStatusCompleted  = "completed"
	ContractStatusNone       = "no_contract"
)

// DerivedStatus 由步骤序列派生合同状态
// 全部完成为 completed；存在已完成或进行中的步骤为 in_progress；
// 全部未开始为 pending；没有步骤视为 pending
func (c *Contract) DerivedStatus() string {
	if len(c.Steps) == 0 {
		return ContractStatusPending
	}

	completed := 0
	started := 0
	for _, step := range c.Steps {
		switch step.Status {
		case StepStatusCompleted:
			completed++
			started++
		case StepStatusInProgress:
			started++
		}
	}

	if completed == len(c.Steps) {
		return ContractStatusCompleted
	}
	if started > 0 {
		return ContractStatusInProgress
	}
	return ContractStatusPending
}

// IsActive 合同是否生效中（完成或办理中）
func (c *Contract) IsActive() bool {
	status := c.DerivedStatus()
	return status == ContractStatusCompleted || status == ContractStatusInProgress
}

// ExpiresWithin 合同是否在 now 起指定月数内到期
// 按日历月计算：截止点为 now 加 months 个自然月，已过期的合同不计入
func (c *Contract) ExpiresWithin(now time.Time, months int) bool {
	if c.EndDate == nil {
		return false
	}
	end := *c.EndDate
	return !end.Before(now) && end.Before(now.AddDate(0, months, 0))
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func stepsWith(statuses ...string) []ContractStep {
	steps := make([]ContractStep, len(statuses))
	for i, s := range statuses {
		steps[i] = ContractStep{Seq: i + 1, Status: s}
	}
	return steps
}

func TestContractDerivedStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     string
	}{
		{"全部完成", []string{StepStatusCompleted, StepStatusCompleted}, ContractStatusCompleted},
		{"部分完成", []string{StepStatusCompleted, StepStatusPending}, ContractStatusInProgress},
		{"有进行中步骤", []string{StepStatusInProgress, StepStatusPending}, ContractStatusInProgress},
		{"全部未开始", []string{StepStatusPending, StepStatusPending}, ContractStatusPending},
		{"无步骤", nil, ContractStatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Contract{Steps: stepsWith(tt.statuses...)}
			assert.Equal(t, tt.want, c.DerivedStatus())
		})
	}
}

func TestContractIsActive(t *testing.T) {
	active := Contract{Steps: stepsWith(StepStatusCompleted, StepStatusInProgress)}
	assert.True(t, active.IsActive())

	pending := Contract{Steps: stepsWith(StepStatusPending)}
	assert.False(t, pending.IsActive())
}

func TestContractExpiresWithin(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	in3Months := now.AddDate(0, 3, 0)
	in8Months := now.AddDate(0, 8, 0)
	past := now.AddDate(0, -1, 0)

	assert.True(t, (&Contract{EndDate: &in3Months}).ExpiresWithin(now, 6))
	assert.False(t, (&Contract{EndDate: &in8Months}).ExpiresWithin(now, 6))
	// 已经过期的合同不计入"即将到期"
	assert.False(t, (&Contract{EndDate: &past}).ExpiresWithin(now, 6))
	// 无结束日期的合同不到期
	assert.False(t, (&Contract{}).ExpiresWithin(now, 6))
}

// 窗口按自然月计算，不是固定180天
func TestContractExpiresWithinCalendarMonths(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cutoff := now.AddDate(0, 6, 0) // 2026-07-01

	// 截止点前一天在窗口内；固定180天的算法会把它排除（180天只到6月30日）
	dayBefore := cutoff.AddDate(0, 0, -1)
	assert.True(t, (&Contract{EndDate: &dayBefore}).ExpiresWithin(now, 6))

	// 截止点当天不在窗口内
	assert.False(t, (&Contract{EndDate: &cutoff}).ExpiresWithin(now, 6))
}

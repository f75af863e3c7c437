package models

import (
	"time"
)

// Repair 维修记录模型
type Repair struct {
	BaseModel
	TicketNo    string     `json:"ticket_no" gorm:"unique;not null;size:40"` // 维修单号（UUID）
	RoomID      *uint      `json:"room_id" gorm:"index"`
	Title       string     `json:"title" gorm:"not null;size:200"`
	Description string     `json:"description" gorm:"type:text"`
	Status      string     `json:"status" gorm:"not null;size:20;default:'pending';index"`
	Cost        int64      `json:"cost" gorm:"default:0"`
	IsUrgent    bool       `json:"is_urgent" gorm:"default:false;index"`
	RequestDate *time.Time `json:"request_date" gorm:"index"`

	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

// TableName 表名
func (r *Repair) TableName() string {
	return "repairs"
}

// 维修状态常量
const (
	RepairStatusPending    = "pending"
	RepairStatusInProgress = "in_progress"
	RepairStatusCompleted  = "completed"
)

// IsOpen 维修是否未完结
func (r *Repair) IsOpen() bool {
	return r.Status == RepairStatusPending || r.Status == RepairStatusInProgress
}

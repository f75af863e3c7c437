package models

import (
	"time"
)

// Resident 住户模型
// 门户账号单独存放在 users 表（Role=resident），通过 User.ResidentID 关联；
// 没有关联账号的住户无法登录住户门户
type Resident struct {
	BaseModel
	RoomID     uint       `json:"room_id" gorm:"not null;index"`
	Name       string     `json:"name" gorm:"not null;size:100"`
	Phone      *string    `json:"phone" gorm:"size:20"`
	Email      *string    `json:"email" gorm:"size:100"`
	MoveInDate *time.Time `json:"move_in_date"`
	IsActive   bool       `json:"is_active" gorm:"default:true;index"`

	Room      *Room      `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Contracts []Contract `gorm:"foreignKey:ResidentID" json:"contracts,omitempty"`
}

// TableName 表名
func (r *Resident) TableName() string {
	return "residents"
}

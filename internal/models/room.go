package models

import (
	"gorm.io/datatypes"
)

// Room 房间模型
// RoomNumber 在写入时统一格式化为3位零填充的半角数字串（非数字房间号原样保留）
type Room struct {
	BaseModel
	PropertyID     uint           `json:"property_id" gorm:"not null;index"`
	RoomNumber     string         `json:"room_number" gorm:"not null;size:20;index"`
	Layout         string         `json:"layout" gorm:"size:20"` // 户型，如 1LDK / 2DK
	SizeSqm        float64        `json:"size_sqm"`
	Floor          int            `json:"floor"`
	MonthlyRent    int64          `json:"monthly_rent"`
	MaintenanceFee int64          `json:"maintenance_fee"`
	IsOccupied     bool           `json:"is_occupied" gorm:"default:false;index"`
	Photos         datatypes.JSON `json:"photos" gorm:"type:json"` // 房间照片路径列表

	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}

// TableName 表名
func (r *Room) TableName() string {
	return "rooms"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 业务表公共字段
// 物业台账按软删除处理，删除的房间和合同保留记录可追溯
// 时间戳随实体返回，前端列表按更新时间展示
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

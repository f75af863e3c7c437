package models

// Property 物业（楼栋）模型
// 入住率为派生数据，由统计引擎按房间实时计算，不落库
type Property struct {
	BaseModel
	// 同名校验在服务层做，软删除后的名称可以复用
	Name           string `json:"name" gorm:"not null;size:100;index"`
	Address        string `json:"address" gorm:"size:255"`
	TotalRoomCount int    `json:"total_room_count" gorm:"default:0"`

	Rooms []Room `gorm:"foreignKey:PropertyID" json:"rooms,omitempty"`
}

// TableName 表名
func (p *Property) TableName() string {
	return "properties"
}

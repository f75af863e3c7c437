package models

// Notification 站内通知
type Notification struct {
	BaseModel
	MessageID string `json:"message_id" gorm:"unique;not null;size:40"` // 消息ID（UUID）
	UserID    uint   `json:"user_id" gorm:"not null;index"`
	Type      string `json:"type" gorm:"size:50"`
	Title     string `json:"title" gorm:"not null;size:200"`
	Content   string `json:"content" gorm:"type:text"`
	IsRead    bool   `json:"is_read" gorm:"default:false;index"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 表名
func (n *Notification) TableName() string {
	return "notifications"
}

// 通知类型常量
const (
	NotifyTypeContractExpiry  = "contract_expiry"
	NotifyTypeResidentRequest = "resident_request"
	NotifyTypeSystem          = "system"
)

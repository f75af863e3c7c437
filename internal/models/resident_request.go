package models

// ResidentRequest 住户提交的申请/咨询
// pending 表示尚未被物业确认，即仪表盘上的"未读申请"
type ResidentRequest struct {
	BaseModel
	ResidentID uint   `json:"resident_id" gorm:"not null;index"`
	Category   string `json:"category" gorm:"size:50"` // 申请类别，如 repair / complaint / other
	Title      string `json:"title" gorm:"not null;size:200"`
	Content    string `json:"content" gorm:"type:text"`
	Status     string `json:"status" gorm:"not null;size:20;default:'pending';index"`

	Resident *Resident `gorm:"foreignKey:ResidentID" json:"resident,omitempty"`
}

// TableName 表名
func (r *ResidentRequest) TableName() string {
	return "resident_requests"
}

// 申请状态常量
const (
	RequestStatusPending    = "pending"     // 未读
	RequestStatusInProgress = "in_progress" // 已确认处理中
	RequestStatusResolved   = "resolved"
)

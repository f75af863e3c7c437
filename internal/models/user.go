package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User 门户账号模型
// 管理员与物业经理使用后台门户，住户账号关联到具体住户记录
type User struct {
	BaseModel
	Username     string     `json:"username" gorm:"unique;not null;size:50;index"`
	PasswordHash string     `json:"-" gorm:"not null;size:255"`
	Name         string     `json:"name" gorm:"not null;size:100"`
	Email        *string    `json:"email" gorm:"size:100"`
	Role         string     `json:"role" gorm:"not null;size:20;index"` // admin / manager / resident
	Status       string     `json:"status" gorm:"default:'active';size:20"`
	ResidentID   *uint      `json:"resident_id" gorm:"index"` // 住户账号关联的住户
	LastLoginAt  *time.Time `json:"last_login_at"`

	// 经理名下分配的物业
	Properties []Property `gorm:"many2many:property_assignments;" json:"properties,omitempty"`
}

// TableName 表名
func (u *User) TableName() string {
	return "users"
}

// PropertyAssignment 经理与物业的分配关系
// 取代按物业名称硬编码的归属判断
type PropertyAssignment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	PropertyID uint      `gorm:"not null;index" json:"property_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// 角色常量
const (
	RoleAdmin    = "admin"    // 系统管理员
	RoleManager  = "manager"  // 物业经理
	RoleResident = "resident" // 住户
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// SetPassword 设置密码
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// IsActive 账号是否可用
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsStaff 是否后台角色（管理员或物业经理）
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

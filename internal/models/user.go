package models

import "time"

// User 用户表
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                 // 主键
	Name         string    `gorm:"not null" json:"name"`                                 // 显示名称
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`                 // 登录名
	Email        *string   `gorm:"uniqueIndex" json:"email"`                             // 邮箱（可选）
	PasswordHash string    `gorm:"not null" json:"-"`                                    // 密码哈希（不返回给前端）
	Role         string    `gorm:"type:varchar(32);not null;default:'user'" json:"role"` // 角色（user/administrator）
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`               // 是否启用
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                           // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// EmailValue 返回邮箱字符串，未设置时为空
func (u *User) EmailValue() string {
	if u == nil || u.Email == nil {
		return ""
	}
	return *u.Email
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
//
// 认证与会话由上游服务负责，这里仅保留购物车关联所需的最小字段。
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`        // 主键
	Name      string         `gorm:"not null" json:"name"`        // 显示名
	Email     string         `gorm:"uniqueIndex" json:"email"`    // 邮箱
	CreatedAt time.Time      `gorm:"index" json:"created_at"`     // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                  // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`              // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

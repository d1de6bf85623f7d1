package models

import (
	"time"

	"gorm.io/gorm"
)

// Promotion 促销规则
//
// PromoPrice 与 DiscountPercent 二选一：PromoPrice 为绝对活动价，
// DiscountPercent 为折扣百分比。两者都为空时规则无效，按基础价处理。
type Promotion struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                // 主键
	ProductID       uint           `gorm:"index;not null" json:"product_id"`                    // 关联商品ID
	Active          bool           `gorm:"not null;default:true;index" json:"active"`           // 是否启用
	PromoPrice      *Money         `gorm:"type:decimal(20,2)" json:"promo_price"`               // 活动价（绝对值，可空）
	DiscountPercent *Money         `gorm:"type:decimal(20,2)" json:"discount_percent"`          // 折扣百分比（可空）
	StartsAt        *time.Time     `gorm:"index" json:"starts_at"`                              // 生效时间（空为不限）
	EndsAt          *time.Time     `gorm:"index" json:"ends_at"`                                // 失效时间（空为不限）
	Label           string         `gorm:"type:varchar(100)" json:"label"`                      // 展示标签
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                          // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (Promotion) TableName() string {
	return "promotions"
}

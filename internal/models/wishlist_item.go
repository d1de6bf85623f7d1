package models

import "time"

// WishlistItem 心愿单项（商品快照，不占用库存）
type WishlistItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                             // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`    // 用户ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"` // 商品ID
	Name      string    `gorm:"not null" json:"name"`                                             // 商品名称快照
	Price     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`               // 价格快照
	Image     string    `gorm:"type:varchar(255)" json:"image"`                                   // 图片快照
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                          // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                       // 更新时间
}

// TableName 指定表名
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

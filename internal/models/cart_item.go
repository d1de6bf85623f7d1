package models

import "time"

// CartItem 购物车项
//
// name/price/image 为加入购物车时的商品快照，商品后续改价不回溯已有行。
// 物理删除（不走软删除），避免与 (user_id, product_id) 唯一索引冲突。
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                         // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`    // 用户ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"` // 商品ID
	Name      string    `gorm:"not null" json:"name"`                                         // 商品名称快照
	Price     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`           // 单价快照
	Quantity  int       `gorm:"not null" json:"quantity"`                                     // 数量
	Image     string    `gorm:"type:varchar(255)" json:"image"`                               // 图片快照
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                                      // 更新时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

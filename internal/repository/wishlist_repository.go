package repository

import (
	"github.com/kandu-shop/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository 心愿单数据访问接口
type WishlistRepository interface {
	ListByUser(userID uint) ([]models.WishlistItem, error)
	ExistsByUserAndProduct(userID, productID uint) (bool, error)
	Create(item *models.WishlistItem) error
	DeleteByUserAndProduct(userID, productID uint) error
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// ListByUser 获取用户心愿单
func (r *GormWishlistRepository) ListByUser(userID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.db.Where("user_id = ?", userID).Order("id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ExistsByUserAndProduct 判断商品是否已在心愿单
func (r *GormWishlistRepository) ExistsByUserAndProduct(userID, productID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建心愿单项
func (r *GormWishlistRepository) Create(item *models.WishlistItem) error {
	return r.db.Create(item).Error
}

// DeleteByUserAndProduct 删除心愿单项
func (r *GormWishlistRepository) DeleteByUserAndProduct(userID, productID uint) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.WishlistItem{}).Error
}

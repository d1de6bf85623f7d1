package repository

import (
	"errors"

	"github.com/kandu-shop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	ListByUserForUpdate(userID uint) ([]models.CartItem, error)
	GetByUserAndProduct(userID, productID uint) (*models.CartItem, error)
	GetByUserAndProductForUpdate(userID, productID uint) (*models.CartItem, error)
	GetByIDForUpdate(id, userID uint) (*models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateSnapshot(id uint, quantity int, price models.Money, name, image string) error
	UpdateQuantity(id, userID uint, quantity int) (int64, error)
	DeleteByID(id uint) error
	ClearByUser(userID uint) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser 获取用户购物车项
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("user_id = ?", userID).Order("updated_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByUserForUpdate 加锁获取用户全部购物车项（需在事务内调用）
func (r *GormCartRepository) ListByUserForUpdate(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByUserAndProduct 获取用户某商品的购物车项
func (r *GormCartRepository) GetByUserAndProduct(userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByUserAndProductForUpdate 加锁获取用户某商品的购物车项（需在事务内调用）
func (r *GormCartRepository) GetByUserAndProductForUpdate(userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByIDForUpdate 加锁获取购物车项，按归属用户过滤（需在事务内调用）
func (r *GormCartRepository) GetByIDForUpdate(id, userID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create 创建购物车项
func (r *GormCartRepository) Create(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateSnapshot 合并已有行：累加数量并刷新快照字段
func (r *GormCartRepository) UpdateSnapshot(id uint, quantity int, price models.Money, name, image string) error {
	return r.db.Model(&models.CartItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity": quantity,
			"price":    price,
			"name":     name,
			"image":    image,
		}).Error
}

// UpdateQuantity 直接设置数量，按归属用户过滤
func (r *GormCartRepository) UpdateQuantity(id, userID uint, quantity int) (int64, error) {
	result := r.db.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("quantity", quantity)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteByID 删除购物车项
func (r *GormCartRepository) DeleteByID(id uint) error {
	return r.db.Delete(&models.CartItem{}, id).Error
}

// ClearByUser 清空购物车
func (r *GormCartRepository) ClearByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

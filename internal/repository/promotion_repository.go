package repository

import (
	"errors"
	"time"

	"github.com/kandu-shop/internal/models"

	"gorm.io/gorm"
)

// PromotionRepository 促销数据访问接口
type PromotionRepository interface {
	GetByID(id uint) (*models.Promotion, error)
	GetActiveByProduct(productID uint, now time.Time) (*models.Promotion, error)
	List(filter PromotionListFilter) ([]models.Promotion, int64, error)
	Create(promotion *models.Promotion) error
	WithTx(tx *gorm.DB) PromotionRepository
}

// PromotionListFilter 促销列表筛选
type PromotionListFilter struct {
	ProductID uint
	Active    *bool
	Page      int
	PageSize  int
}

// GormPromotionRepository GORM 实现
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository 创建促销仓库
func NewPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPromotionRepository) WithTx(tx *gorm.DB) PromotionRepository {
	if tx == nil {
		return r
	}
	return &GormPromotionRepository{db: tx}
}

// GetByID 根据ID获取促销
func (r *GormPromotionRepository) GetByID(id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// GetActiveByProduct 获取商品当前生效的促销
//
// 时间窗口内最新创建（id 最大）的规则为准。
func (r *GormPromotionRepository) GetActiveByProduct(productID uint, now time.Time) (*models.Promotion, error) {
	var promotion models.Promotion
	query := r.db.Where("product_id = ? AND active = ?", productID, true)
	query = query.Where("(starts_at IS NULL OR starts_at <= ?)", now)
	query = query.Where("(ends_at IS NULL OR ends_at >= ?)", now)
	if err := query.Order("id desc").First(&promotion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// List 促销列表（管理端只读）
func (r *GormPromotionRepository) List(filter PromotionListFilter) ([]models.Promotion, int64, error) {
	var promotions []models.Promotion
	query := r.db.Model(&models.Promotion{})

	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&promotions).Error; err != nil {
		return nil, 0, err
	}
	return promotions, total, nil
}

// Create 创建促销
func (r *GormPromotionRepository) Create(promotion *models.Promotion) error {
	return r.db.Create(promotion).Error
}

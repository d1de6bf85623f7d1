package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kandu-shop/internal/cache"
	"github.com/kandu-shop/internal/logger"
	"github.com/kandu-shop/internal/models"
	"github.com/kandu-shop/internal/repository"
)

const (
	catalogCacheKey = "catalog:page1"
	catalogCacheTTL = 60 * time.Second
)

// ProductView 商品展示视图（叠加促销解析结果）
type ProductView struct {
	models.Product
	EffectivePrice models.Money `json:"effective_price"`
	OnPromotion    bool         `json:"on_promotion"`
	PromotionLabel string       `json:"promotion_label,omitempty"`
	IsSoldOut      bool         `json:"is_sold_out"`
}

// ProductPage 商品列表分页结果
type ProductPage struct {
	Items    []ProductView `json:"items"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// CatalogService 商品目录读侧服务
type CatalogService struct {
	productRepo repository.ProductRepository
	pricing     *PricingService
}

// NewCatalogService 创建目录服务
func NewCatalogService(productRepo repository.ProductRepository, pricing *PricingService) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		pricing:     pricing,
	}
}

// ListProducts 上架商品列表
//
// 价格按请求时刻逐个解析。首页结果走 Redis 短缓存，缓存故障时降级直读。
func (c *CatalogService) ListProducts(ctx context.Context, page, pageSize int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	cacheable := page == 1 && pageSize == 20
	if cacheable {
		var cached ProductPage
		hit, err := cache.GetJSON(ctx, catalogCacheKey, &cached)
		if err != nil {
			logger.Warnw("读取商品列表缓存失败", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	products, total, err := c.productRepo.List(repository.ProductListFilter{
		OnlyActive: true,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := &ProductPage{
		Items:    make([]ProductView, 0, len(products)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for _, product := range products {
		view, err := c.buildView(product, now)
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, view)
	}

	if cacheable {
		if err := cache.SetJSON(ctx, catalogCacheKey, result, catalogCacheTTL); err != nil {
			logger.Warnw("写入商品列表缓存失败", "error", err)
		}
	}
	return result, nil
}

// GetProduct 商品详情
func (c *CatalogService) GetProduct(id uint) (*ProductView, error) {
	product, err := c.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	view, err := c.buildView(*product, time.Now())
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// InvalidateCache 商品变更后清除列表缓存
func (c *CatalogService) InvalidateCache(ctx context.Context) {
	if err := cache.Del(ctx, catalogCacheKey); err != nil {
		logger.Warnw("清除商品列表缓存失败", "error", err)
	}
}

func (c *CatalogService) buildView(product models.Product, now time.Time) (ProductView, error) {
	price, promotion, err := c.pricing.ResolveWithPromotion(product.ID, product.Price, now)
	if err != nil {
		return ProductView{}, err
	}
	view := ProductView{
		Product:        product,
		EffectivePrice: price,
		IsSoldOut:      product.Quantity <= 0,
	}
	if promotion != nil {
		view.OnPromotion = true
		view.PromotionLabel = promotion.Label
		if view.PromotionLabel == "" {
			view.PromotionLabel = fmt.Sprintf("PROMO-%d", promotion.ID)
		}
	}
	return view, nil
}

package service

import (
	"time"

	"github.com/kandu-shop/internal/constants"
	"github.com/kandu-shop/internal/models"
	"github.com/kandu-shop/internal/repository"

	"github.com/shopspring/decimal"
)

// priceEpsilon 吸收浮点噪声：折扣价须低于基础价超过该值才生效
var priceEpsilon = decimal.NewFromFloat(1e-4)

// PricingService 价格解析服务
//
// 无副作用：结果仅由当前促销状态与时钟决定。
type PricingService struct {
	promotionRepo repository.PromotionRepository
}

// NewPricingService 创建价格解析服务
func NewPricingService(promotionRepo repository.PromotionRepository) *PricingService {
	return &PricingService{
		promotionRepo: promotionRepo,
	}
}

// ResolveUnitPrice 计算商品在 asOf 时刻的有效单价
func (s *PricingService) ResolveUnitPrice(productID uint, basePrice models.Money, asOf time.Time) (models.Money, error) {
	price, _, err := s.ResolveWithPromotion(productID, basePrice, asOf)
	return price, err
}

// ResolveWithPromotion 计算有效单价并返回命中的促销规则（未命中为 nil）
func (s *PricingService) ResolveWithPromotion(productID uint, basePrice models.Money, asOf time.Time) (models.Money, *models.Promotion, error) {
	base := basePrice.Decimal
	if base.IsNegative() {
		base = decimal.Zero
	}
	baseMoney := models.NewMoneyFromDecimal(base)

	promotion, err := s.promotionRepo.GetActiveByProduct(productID, asOf)
	if err != nil {
		return models.Money{}, nil, err
	}
	if promotion == nil {
		return baseMoney, nil, nil
	}

	effective := effectiveUnitPrice(promotion, base)
	if effective.Equal(base) {
		// 规则未产生更低的价格，按无促销处理
		return baseMoney, nil, nil
	}
	return models.NewMoneyFromDecimal(effective), promotion, nil
}

// effectiveUnitPrice 应用单条促销规则，结果永不高于基础价
func effectiveUnitPrice(promotion *models.Promotion, base decimal.Decimal) decimal.Decimal {
	if promotion.PromoPrice != nil {
		pp := promotion.PromoPrice.Decimal
		if !pp.IsNegative() && pp.LessThan(base) {
			return pp
		}
		return base
	}
	if promotion.DiscountPercent != nil {
		pct := promotion.DiscountPercent.Decimal
		if pct.IsPositive() && pct.LessThanOrEqual(decimal.NewFromInt(constants.DiscountPercentCeiling)) {
			hundred := decimal.NewFromInt(100)
			discounted := base.Mul(hundred.Sub(pct)).Div(hundred)
			if discounted.IsNegative() {
				discounted = decimal.Zero
			}
			if base.Sub(discounted).GreaterThan(priceEpsilon) {
				return discounted
			}
		}
		return base
	}
	return base
}

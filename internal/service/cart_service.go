package service

import (
	"context"
	"time"

	"github.com/kandu-shop/internal/constants"
	"github.com/kandu-shop/internal/logger"
	"github.com/kandu-shop/internal/models"
	"github.com/kandu-shop/internal/queue"
	"github.com/kandu-shop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AddToCartInput 加购请求
type AddToCartInput struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// CartOutcome 加购结果
//
// Kind 为 added / partial / out_of_stock 三态，库存不足不是错误。
type CartOutcome struct {
	Kind      string           `json:"kind"`
	Requested int              `json:"requested"`
	Granted   int              `json:"granted"`
	Item      *models.CartItem `json:"item,omitempty"`
}

// CartLine 购物车明细行（含小计）
type CartLine struct {
	Item     models.CartItem `json:"item"`
	Subtotal models.Money    `json:"subtotal"`
}

// CartTotals 购物车汇总，当前统一免运费
type CartTotals struct {
	Lines      []CartLine   `json:"lines"`
	Subtotal   models.Money `json:"subtotal"`
	Shipping   models.Money `json:"shipping"`
	GrandTotal models.Money `json:"grand_total"`
	Count      int          `json:"count"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo          repository.CartRepository
	productRepo       repository.ProductRepository
	promotionRepo     repository.PromotionRepository
	inventory         *InventoryService
	queueClient       *queue.Client
	lowStockThreshold int
}

// NewCartService 创建购物车服务
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	promotionRepo repository.PromotionRepository,
	inventory *InventoryService,
	queueClient *queue.Client,
	lowStockThreshold int,
) *CartService {
	return &CartService{
		cartRepo:          cartRepo,
		productRepo:       productRepo,
		promotionRepo:     promotionRepo,
		inventory:         inventory,
		queueClient:       queueClient,
		lowStockThreshold: lowStockThreshold,
	}
}

// AddToCart 加购商品
//
// 整个流程在单事务内完成：锁商品行、预占库存、按当前促销解析单价、
// 合并或新建购物车行。授予数量不足请求时返回 partial，库存为零时
// 返回 out_of_stock 且不产生任何变更。
func (s *CartService) AddToCart(ctx context.Context, input AddToCartInput) (*CartOutcome, error) {
	if input.UserID == 0 || input.ProductID == 0 {
		return nil, ErrInvalidCartItem
	}
	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}

	var outcome *CartOutcome
	var remaining int

	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		reservation, err := s.inventory.Reserve(tx, input.ProductID, quantity)
		if err != nil {
			return err
		}
		remaining = reservation.Remaining

		if reservation.Granted == 0 {
			outcome = &CartOutcome{
				Kind:      constants.CartOutcomeOutOfStock,
				Requested: quantity,
				Granted:   0,
			}
			return nil
		}

		product := reservation.Product
		pricing := NewPricingService(s.promotionRepo.WithTx(tx))
		unitPrice, _, err := pricing.ResolveWithPromotion(product.ID, product.Price, time.Now())
		if err != nil {
			return err
		}

		cartRepo := s.cartRepo.WithTx(tx)
		existing, err := cartRepo.GetByUserAndProductForUpdate(input.UserID, input.ProductID)
		if err != nil {
			return err
		}

		var item *models.CartItem
		if existing != nil {
			// 合并已有行：累加数量并刷新单价与快照
			newQuantity := existing.Quantity + reservation.Granted
			if err := cartRepo.UpdateSnapshot(existing.ID, newQuantity, unitPrice, product.Name, product.Image); err != nil {
				return err
			}
			existing.Quantity = newQuantity
			existing.Price = unitPrice
			existing.Name = product.Name
			existing.Image = product.Image
			item = existing
		} else {
			item = &models.CartItem{
				UserID:    input.UserID,
				ProductID: input.ProductID,
				Name:      product.Name,
				Price:     unitPrice,
				Quantity:  reservation.Granted,
				Image:     product.Image,
			}
			if err := cartRepo.Create(item); err != nil {
				return err
			}
		}

		kind := constants.CartOutcomeAdded
		if reservation.Granted < quantity {
			kind = constants.CartOutcomePartial
		}
		outcome = &CartOutcome{
			Kind:      kind,
			Requested: quantity,
			Granted:   reservation.Granted,
			Item:      item,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if outcome.Granted > 0 && remaining <= s.lowStockThreshold {
		s.notifyLowStock(ctx, input.ProductID, remaining)
	}
	return outcome, nil
}

// notifyLowStock 投递低库存告警任务，失败只记日志不影响主流程
func (s *CartService) notifyLowStock(ctx context.Context, productID uint, remaining int) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueStockLowAlert(ctx, productID, remaining); err != nil {
		logger.Warnw("投递低库存告警任务失败",
			"product_id", productID,
			"remaining", remaining,
			"error", err,
		)
	}
}

// UpdateQuantity 直接设置购物车行数量
//
// 仅改写行数量，不做库存核对，也不回补差额。
func (s *CartService) UpdateQuantity(userID, itemID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	rows, err := s.cartRepo.UpdateQuantity(itemID, userID, quantity)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// RemoveItem 删除购物车行并回补库存
//
// 行不存在或不属于该用户时静默成功。回补与删除同事务，要么都生效要么都不生效。
func (s *CartService) RemoveItem(userID, itemID uint) error {
	return s.productRepo.Transaction(func(tx *gorm.DB) error {
		item, err := s.cartRepo.WithTx(tx).GetByIDForUpdate(itemID, userID)
		if err != nil {
			return err
		}
		if item == nil {
			return nil
		}
		if err := s.inventory.Release(tx, item.ProductID, item.Quantity); err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).DeleteByID(item.ID)
	})
}

// ClearCart 清空购物车并逐行回补库存
func (s *CartService) ClearCart(userID uint) error {
	return s.productRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		items, err := cartRepo.ListByUserForUpdate(userID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := s.inventory.Release(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return cartRepo.ClearByUser(userID)
	})
}

// ListByUser 获取用户购物车项
func (s *CartService) ListByUser(userID uint) ([]models.CartItem, error) {
	return s.cartRepo.ListByUser(userID)
}

// Totals 计算购物车汇总
func (s *CartService) Totals(items []models.CartItem) CartTotals {
	totals := CartTotals{
		Lines: make([]CartLine, 0, len(items)),
	}
	sum := decimal.Zero
	for _, item := range items {
		subtotal := item.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		totals.Lines = append(totals.Lines, CartLine{
			Item:     item,
			Subtotal: models.NewMoneyFromDecimal(subtotal),
		})
		totals.Count += item.Quantity
		sum = sum.Add(subtotal)
	}
	totals.Subtotal = models.NewMoneyFromDecimal(sum)
	totals.Shipping = models.NewMoneyFromDecimal(decimal.Zero)
	totals.GrandTotal = models.NewMoneyFromDecimal(sum)
	return totals
}

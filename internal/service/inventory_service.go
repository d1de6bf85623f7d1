package service

import (
	"github.com/kandu-shop/internal/models"
	"github.com/kandu-shop/internal/repository"

	"gorm.io/gorm"
)

// StockReservation 一次库存预占的结果
type StockReservation struct {
	Product   *models.Product // 加锁读取到的商品行
	Requested int             // 请求数量
	Granted   int             // 实际授予数量（min(请求, 可售)）
	Remaining int             // 预占后剩余库存
}

// InventoryService 库存台账服务
//
// Reserve / Release 必须运行在同一事务内：先锁商品行再变更数量，
// 保证同一商品上的并发预占串行化，库存永不为负。
type InventoryService struct {
	productRepo repository.ProductRepository
}

// NewInventoryService 创建库存台账服务
func NewInventoryService(productRepo repository.ProductRepository) *InventoryService {
	return &InventoryService{
		productRepo: productRepo,
	}
}

// Reserve 预占库存
//
// 库存为零时授予 0 且不产生任何变更；否则授予 min(requested, 可售)
// 并扣减相应数量。条件更新失败（并发竞争）时返回 ErrStockConflict，
// 由外层事务整体回滚。
func (s *InventoryService) Reserve(tx *gorm.DB, productID uint, requested int) (*StockReservation, error) {
	if productID == 0 {
		return nil, ErrProductNotFound
	}
	if requested <= 0 {
		return nil, ErrInvalidQuantity
	}

	repo := s.productRepo.WithTx(tx)
	product, err := repo.GetByIDForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	available := product.Quantity
	if available <= 0 {
		return &StockReservation{
			Product:   product,
			Requested: requested,
			Granted:   0,
			Remaining: available,
		}, nil
	}

	granted := requested
	if granted > available {
		granted = available
	}

	rows, err := repo.ReserveStock(productID, granted)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrStockConflict
	}

	return &StockReservation{
		Product:   product,
		Requested: requested,
		Granted:   granted,
		Remaining: available - granted,
	}, nil
}

// Release 归还库存（数量非正时为空操作）
func (s *InventoryService) Release(tx *gorm.DB, productID uint, quantity int) error {
	if productID == 0 || quantity <= 0 {
		return nil
	}
	_, err := s.productRepo.WithTx(tx).ReleaseStock(productID, quantity)
	return err
}

package service

import (
	"github.com/kandu-shop/internal/models"
	"github.com/kandu-shop/internal/repository"
)

// WishlistService 心愿单服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
	}
}

// Add 加入心愿单
//
// 商品已在心愿单或已在购物车时拒绝，二者分别返回不同的哨兵错误。
func (s *WishlistService) Add(userID, productID uint) (*models.WishlistItem, error) {
	if userID == 0 || productID == 0 {
		return nil, ErrInvalidCartItem
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	exists, err := s.wishlistRepo.ExistsByUserAndProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrWishlistDuplicate
	}

	inCart, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	if inCart != nil {
		return nil, ErrWishlistInCart
	}

	item := &models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
	}
	if err := s.wishlistRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove 移出心愿单（不存在时静默成功）
func (s *WishlistService) Remove(userID, productID uint) error {
	return s.wishlistRepo.DeleteByUserAndProduct(userID, productID)
}

// ListByUser 获取用户心愿单
func (s *WishlistService) ListByUser(userID uint) ([]models.WishlistItem, error) {
	return s.wishlistRepo.ListByUser(userID)
}

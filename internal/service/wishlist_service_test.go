package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kandu-shop/internal/models"
	"github.com/kandu-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupWishlistServiceTest(t *testing.T) (*WishlistService, *CartService, *repository.GormProductRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:wishlist_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Promotion{}, &models.CartItem{}, &models.WishlistItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	cartRepo := repository.NewCartRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	inventory := NewInventoryService(productRepo)
	cartSvc := NewCartService(cartRepo, productRepo, promotionRepo, inventory, nil, 0)
	wishlistSvc := NewWishlistService(wishlistRepo, cartRepo, productRepo)
	return wishlistSvc, cartSvc, productRepo
}

func TestWishlistAddAndList(t *testing.T) {
	svc, _, productRepo := setupWishlistServiceTest(t)
	product := &models.Product{
		Name:     "tea",
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
		Quantity: 5,
		IsActive: true,
	}
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	item, err := svc.Add(1, product.ID)
	if err != nil {
		t.Fatalf("wishlist add failed: %v", err)
	}
	if item.Name != "tea" || !item.Price.Decimal.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("unexpected snapshot: %+v", item)
	}

	items, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("wishlist list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("wishlist rows want 1 got %d", len(items))
	}
}

func TestWishlistAddRejectsDuplicate(t *testing.T) {
	svc, _, productRepo := setupWishlistServiceTest(t)
	product := &models.Product{Name: "tea", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(1000)), Quantity: 5, IsActive: true}
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if _, err := svc.Add(1, product.ID); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := svc.Add(1, product.ID); !errors.Is(err, ErrWishlistDuplicate) {
		t.Fatalf("want ErrWishlistDuplicate got %v", err)
	}
}

func TestWishlistAddRejectsProductAlreadyInCart(t *testing.T) {
	svc, cartSvc, productRepo := setupWishlistServiceTest(t)
	product := &models.Product{Name: "tea", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(1000)), Quantity: 5, IsActive: true}
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if _, err := cartSvc.AddToCart(context.Background(), AddToCartInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if _, err := svc.Add(1, product.ID); !errors.Is(err, ErrWishlistInCart) {
		t.Fatalf("want ErrWishlistInCart got %v", err)
	}
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	svc, _, _ := setupWishlistServiceTest(t)
	if _, err := svc.Add(1, 999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
}

func TestWishlistRemoveSilentWhenMissing(t *testing.T) {
	svc, _, productRepo := setupWishlistServiceTest(t)
	product := &models.Product{Name: "tea", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(1000)), Quantity: 5, IsActive: true}
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if _, err := svc.Add(1, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Remove(1, product.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.Remove(1, product.ID); err != nil {
		t.Fatalf("remove missing should be silent, got %v", err)
	}
	items, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("wishlist rows want 0 got %d", len(items))
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kandu-shop/internal/constants"
	"github.com/kandu-shop/internal/models"
	"github.com/kandu-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *repository.GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Promotion{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	cartRepo := repository.NewCartRepository(db)
	inventory := NewInventoryService(productRepo)
	svc := NewCartService(cartRepo, productRepo, promotionRepo, inventory, nil, 0)
	return svc, productRepo, db
}

func createCartTestProduct(t *testing.T, repo *repository.GormProductRepository, name string, price float64, quantity int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		Quantity: quantity,
		IsActive: true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func productQuantity(t *testing.T, repo *repository.GormProductRepository, id uint) int {
	t.Helper()
	product, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if product == nil {
		t.Fatalf("product %d not found", id)
	}
	return product.Quantity
}

func TestAddToCartMergesExistingLine(t *testing.T) {
	svc, productRepo, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, productRepo, "tea", 1000, 10)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		outcome, err := svc.AddToCart(ctx, AddToCartInput{UserID: 1, ProductID: product.ID, Quantity: 2})
		if err != nil {
			t.Fatalf("add to cart failed: %v", err)
		}
		if outcome.Kind != constants.CartOutcomeAdded {
			t.Fatalf("outcome want added got %s", outcome.Kind)
		}
	}

	var items []models.CartItem
	if err := db.Where("user_id = ?", 1).Find(&items).Error; err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("cart rows want 1 got %d", len(items))
	}
	if items[0].Quantity != 4 {
		t.Fatalf("merged quantity want 4 got %d", items[0].Quantity)
	}
	if got := productQuantity(t, productRepo, product.ID); got != 6 {
		t.Fatalf("stock want 6 got %d", got)
	}
}

func TestAddToCartPartialFulfillment(t *testing.T) {
	svc, productRepo, _ := setupCartServiceTest(t)
	product := createCartTestProduct(t, productRepo, "elephant", 3500, 3)

	outcome, err := svc.AddToCart(context.Background(), AddToCartInput{UserID: 1, ProductID: product.ID, Quantity: 5})
	if err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if outcome.Kind != constants.CartOutcomePartial {
		t.Fatalf("outcome want partial got %s", outcome.Kind)
	}
	if outcome.Requested != 5 || outcome.Granted != 3 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if outcome.Item == nil || outcome.Item.Quantity != 3 {
		t.Fatalf("cart line should hold granted quantity, got %+v", outcome.Item)
	}
	if got := productQuantity(t, productRepo, product.ID); got != 0 {
		t.Fatalf("stock want 0 got %d", got)
	}
}

func TestAddToCartOutOfStockMutatesNothing(t *testing.T) {
	svc, productRepo, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, productRepo, "sarong", 2200, 0)

	outcome, err := svc.AddToCart(context.Background(), AddToCartInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if outcome.Kind != constants.CartOutcomeOutOfStock {
		t.Fatalf("outcome want out_of_stock got %s", outcome.Kind)
	}
	if outcome.Granted != 0 || outcome.Item != nil {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Count(&count).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("cart rows want 0 got %d", count)
	}
	if got := productQuantity(t, productRepo, product.ID); got != 0 {
		t.Fatalf("stock want 0 got %d", got)
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	svc, _, _ := setupCartServiceTest(t)

	_, err := svc.AddToCart(context.Background(), AddToCartInput{UserID: 1, ProductID: 999, Quantity: 1})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
}

func TestAddToCartSnapshotsPromotionPrice(t *testing.T) {
	svc, productRepo, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, productRepo, "tea", 1000, 10)
	pct := models.NewMoneyFromDecimal(decimal.NewFromInt(20))
	if err := db.Create(&models.Promotion{ProductID: product.ID, Active: true, DiscountPercent: &pct}).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}

	outcome, err := svc.AddToCart(context.Background(), AddToCartInput{UserID: 1, ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if !outcome.Item.Price.Decimal.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("snapshot price want 800 got %s", outcome.Item.Price.String())
	}
}

func TestRemoveItemRestocks(t *testing.T) {
	svc, productRepo, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, productRepo, "tea", 1000, 10)

	outcome, err := svc.AddToCart(context.Background(), AddToCartInput{UserID: 1, ProductID: product.ID, Quantity: 4})
	if err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if got := productQuantity(t, productRepo, product.ID); got != 6 {
		t.Fatalf("stock want 6 got %d", got)
	}

	if err := svc.RemoveItem(1, outcome.Item.ID); err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	if got := productQuantity(t, productRepo, product.ID); got != 10 {
		t.Fatalf("stock after restock want 10 got %d", got)
	}
	var count int64
	if err := db.Model(&models.CartItem{}).Count(&count).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("cart rows want 0 got %d", count)
	}

	// 不存在的行静默成功
	if err := svc.RemoveItem(1, outcome.Item.ID); err != nil {
		t.Fatalf("remove missing item should be silent, got %v", err)
	}
}

func TestRemoveItemIgnoresOtherUsersLine(t *testing.T) {
	svc, productRepo, _ := setupCartServiceTest(t)
	product := createCartTestProduct(t, productRepo, "tea", 1000, 10)

	outcome, err := svc.AddToCart(context.Background(), AddToCartInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	if err := svc.RemoveItem(2, outcome.Item.ID); err != nil {
		t.Fatalf("remove by other user should be silent, got %v", err)
	}
	if got := productQuantity(t, productRepo, product.ID); got != 8 {
		t.Fatalf("stock should be untouched, want 8 got %d", got)
	}
}

func TestClearCartRestocksAllLines(t *testing.T) {
	svc, productRepo, db := setupCartServiceTest(t)
	tea := createCartTestProduct(t, productRepo, "tea", 1000, 10)
	elephant := createCartTestProduct(t, productRepo, "elephant", 3500, 5)

	ctx := context.Background()
	if _, err := svc.AddToCart(ctx, AddToCartInput{UserID: 1, ProductID: tea.ID, Quantity: 3}); err != nil {
		t.Fatalf("add tea failed: %v", err)
	}
	if _, err := svc.AddToCart(ctx, AddToCartInput{UserID: 1, ProductID: elephant.ID, Quantity: 2}); err != nil {
		t.Fatalf("add elephant failed: %v", err)
	}

	if err := svc.ClearCart(1); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}
	if got := productQuantity(t, productRepo, tea.ID); got != 10 {
		t.Fatalf("tea stock want 10 got %d", got)
	}
	if got := productQuantity(t, productRepo, elephant.ID); got != 5 {
		t.Fatalf("elephant stock want 5 got %d", got)
	}
	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("cart rows want 0 got %d", count)
	}
}

func TestUpdateQuantity(t *testing.T) {
	svc, productRepo, _ := setupCartServiceTest(t)
	product := createCartTestProduct(t, productRepo, "tea", 1000, 10)

	outcome, err := svc.AddToCart(context.Background(), AddToCartInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	if err := svc.UpdateQuantity(1, outcome.Item.ID, 5); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	items, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("quantity want 5 got %+v", items)
	}
	// 数量直改不校验库存，也不回补差额
	if got := productQuantity(t, productRepo, product.ID); got != 8 {
		t.Fatalf("stock should stay at 8 got %d", got)
	}

	if err := svc.UpdateQuantity(1, outcome.Item.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("want ErrInvalidQuantity got %v", err)
	}
	if err := svc.UpdateQuantity(1, 999, 2); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("want ErrCartItemNotFound got %v", err)
	}
	if err := svc.UpdateQuantity(2, outcome.Item.ID, 2); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("other user's line should look missing, got %v", err)
	}
}

func TestTwoUsersShareScarceStock(t *testing.T) {
	svc, productRepo, _ := setupCartServiceTest(t)
	product := createCartTestProduct(t, productRepo, "cinnamon", 850, 3)

	ctx := context.Background()
	first, err := svc.AddToCart(ctx, AddToCartInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if first.Kind != constants.CartOutcomeAdded || first.Granted != 2 {
		t.Fatalf("unexpected first outcome: %+v", first)
	}

	second, err := svc.AddToCart(ctx, AddToCartInput{UserID: 2, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if second.Kind != constants.CartOutcomePartial || second.Granted != 1 {
		t.Fatalf("unexpected second outcome: %+v", second)
	}
	if got := productQuantity(t, productRepo, product.ID); got != 0 {
		t.Fatalf("stock want 0 got %d", got)
	}
}

func TestCartTotals(t *testing.T) {
	svc, _, _ := setupCartServiceTest(t)

	items := []models.CartItem{
		{Price: models.NewMoneyFromDecimal(decimal.NewFromInt(800)), Quantity: 2},
		{Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(12.5)), Quantity: 3},
	}
	totals := svc.Totals(items)
	if totals.Count != 5 {
		t.Fatalf("count want 5 got %d", totals.Count)
	}
	if len(totals.Lines) != 2 {
		t.Fatalf("lines want 2 got %d", len(totals.Lines))
	}
	if !totals.Lines[0].Subtotal.Decimal.Equal(decimal.NewFromInt(1600)) {
		t.Fatalf("line subtotal want 1600 got %s", totals.Lines[0].Subtotal.String())
	}
	if !totals.Subtotal.Decimal.Equal(decimal.NewFromFloat(1637.5)) {
		t.Fatalf("subtotal want 1637.50 got %s", totals.Subtotal.String())
	}
	if !totals.Shipping.Decimal.Equal(decimal.Zero) {
		t.Fatalf("shipping want 0 got %s", totals.Shipping.String())
	}
	if !totals.GrandTotal.Decimal.Equal(totals.Subtotal.Decimal) {
		t.Fatalf("grand total should equal subtotal, got %s", totals.GrandTotal.String())
	}
}

package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/kandu-shop/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate product failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createTestProduct(t *testing.T, repo *GormProductRepository, name string, quantity int, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		Quantity: quantity,
		IsActive: active,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestReserveStockGuardsAgainstOversell(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "tea", 5, true)

	rows, err := repo.ReserveStock(product.ID, 3)
	if err != nil {
		t.Fatalf("reserve stock failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("reserve rows want 1 got %d", rows)
	}

	rows, err = repo.ReserveStock(product.ID, 3)
	if err != nil {
		t.Fatalf("second reserve failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("oversell reserve rows want 0 got %d", rows)
	}

	got, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if got.Quantity != 2 {
		t.Fatalf("quantity want 2 got %d", got.Quantity)
	}
}

func TestReserveStockInvalidParams(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "tea", 5, true)

	if _, err := repo.ReserveStock(0, 1); err == nil {
		t.Fatalf("expected error for zero product id")
	}
	if _, err := repo.ReserveStock(product.ID, 0); err == nil {
		t.Fatalf("expected error for non-positive quantity")
	}
}

func TestReleaseStockNoOpOnNonPositiveQuantity(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "tea", 5, true)

	rows, err := repo.ReleaseStock(product.ID, 0)
	if err != nil {
		t.Fatalf("release zero failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("release zero rows want 0 got %d", rows)
	}

	rows, err = repo.ReleaseStock(product.ID, 2)
	if err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("release rows want 1 got %d", rows)
	}
	got, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if got.Quantity != 7 {
		t.Fatalf("quantity want 7 got %d", got.Quantity)
	}
}

func TestListOnlyActiveFilter(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createTestProduct(t, repo, "active", 1, true)
	createTestProduct(t, repo, "inactive", 1, false)

	products, total, err := repo.List(ProductListFilter{OnlyActive: true, Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(products) != 1 {
		t.Fatalf("active list want 1 got total=%d len=%d", total, len(products))
	}
	if products[0].Name != "active" {
		t.Fatalf("unexpected product: %s", products[0].Name)
	}

	_, total, err = repo.List(ProductListFilter{OnlyActive: false, Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("all list want 2 got %d", total)
	}
}

package main

import (
	"time"

	"github.com/kandu-shop/internal/config"
	"github.com/kandu-shop/internal/logger"
	"github.com/kandu-shop/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	products := []models.Product{
		{
			Name:     "Ceylon Black Tea 500g",
			Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(1200)),
			Quantity: 40,
			Image:    "https://images.unsplash.com/photo-1564890369478-c89ca6d9cde9?w=800",
			IsActive: true,
		},
		{
			Name:     "Handmade Wooden Elephant",
			Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(3500)),
			Quantity: 12,
			Image:    "https://images.unsplash.com/photo-1535941339077-2dd1c7963098?w=800",
			IsActive: true,
		},
		{
			Name:     "Cinnamon Sticks 250g",
			Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(850)),
			Quantity: 60,
			Image:    "https://images.unsplash.com/photo-1587131782738-de30ea91a542?w=800",
			IsActive: true,
		},
		{
			Name:     "Batik Sarong",
			Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(2200)),
			Quantity: 0,
			Image:    "https://images.unsplash.com/photo-1602810318383-e386cc2a3ccf?w=800",
			IsActive: true,
		},
	}

	for i := range products {
		product := &products[i]
		var existing models.Product
		if err := models.DB.Where("name = ?", product.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Name, err)
			} else {
				stdLog.Printf("Created product: %s", product.Name)
			}
		} else {
			*product = existing
			stdLog.Printf("Product already exists: %s", product.Name)
		}
	}

	// 促销规则：一条固定价、一条百分比折扣
	now := time.Now()
	weekLater := now.Add(7 * 24 * time.Hour)
	promoPrice := models.NewMoneyFromDecimal(decimal.NewFromFloat(999))
	discount := models.NewMoneyFromDecimal(decimal.NewFromInt(20))
	promotions := []models.Promotion{
		{
			ProductID:  products[0].ID,
			Active:     true,
			PromoPrice: &promoPrice,
			StartsAt:   &now,
			EndsAt:     &weekLater,
			Label:      "Tea Week",
		},
		{
			ProductID:       products[1].ID,
			Active:          true,
			DiscountPercent: &discount,
			Label:           "Craft Sale",
		},
	}

	for _, promo := range promotions {
		if promo.ProductID == 0 {
			continue
		}
		var count int64
		if err := models.DB.Model(&models.Promotion{}).
			Where("product_id = ? AND label = ?", promo.ProductID, promo.Label).
			Count(&count).Error; err != nil {
			stdLog.Printf("Failed to check promotion %s: %v", promo.Label, err)
			continue
		}
		if count > 0 {
			stdLog.Printf("Promotion already exists: %s", promo.Label)
			continue
		}
		if err := models.DB.Create(&promo).Error; err != nil {
			stdLog.Printf("Failed to create promotion %s: %v", promo.Label, err)
		} else {
			stdLog.Printf("Created promotion: %s", promo.Label)
		}
	}

	stdLog.Println("Seed completed")
}

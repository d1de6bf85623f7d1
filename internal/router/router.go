package router

import (
	"fmt"
	"strings"

	"github.com/kandu-shop/internal/cache"
	"github.com/kandu-shop/internal/config"
	adminhandlers "github.com/kandu-shop/internal/http/handlers/admin"
	publichandlers "github.com/kandu-shop/internal/http/handlers/public"
	"github.com/kandu-shop/internal/logger"
	"github.com/kandu-shop/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "kandu"
	}
	cartWriteRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:cart", redisPrefix),
		WindowSeconds: cfg.Security.CartRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CartRateLimit.MaxRequests,
		MessageKey:    "error.cart_too_many",
	}
	cartRateLimit := RateLimitMiddleware(cache.Client(), cartWriteRule, KeyByUserID)

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
		}

		// 用户接口（身份由网关注入）
		user := apiV1.Group("")
		user.Use(UserIdentityMiddleware())
		{
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", cartRateLimit, publicHandler.AddCartItem)
			user.PUT("/cart/items/:id", cartRateLimit, publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:id", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.GET("/wishlist", publicHandler.GetWishlist)
			user.POST("/wishlist/items", publicHandler.AddWishlistItem)
			user.DELETE("/wishlist/items/:product_id", publicHandler.DeleteWishlistItem)
		}

		// 管理端只读接口
		admin := apiV1.Group("/admin")
		{
			admin.GET("/products", adminHandler.GetAdminProducts)
			admin.GET("/promotions", adminHandler.GetAdminPromotions)
		}
	}

	return r
}

package provider

import (
	"github.com/kandu-shop/internal/cache"
	"github.com/kandu-shop/internal/config"
	"github.com/kandu-shop/internal/logger"
	"github.com/kandu-shop/internal/models"
	"github.com/kandu-shop/internal/queue"
	"github.com/kandu-shop/internal/repository"
	"github.com/kandu-shop/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProductRepo   repository.ProductRepository
	PromotionRepo repository.PromotionRepository
	CartRepo      repository.CartRepository
	WishlistRepo  repository.WishlistRepository

	// Services
	PricingService   *service.PricingService
	InventoryService *service.InventoryService
	CatalogService   *service.CatalogService
	CartService      *service.CartService
	WishlistService  *service.WishlistService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProductRepo = repository.NewProductRepository(db)
	c.PromotionRepo = repository.NewPromotionRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
}

func (c *Container) initServices() {
	c.PricingService = service.NewPricingService(c.PromotionRepo)
	c.InventoryService = service.NewInventoryService(c.ProductRepo)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.PricingService)
	c.CartService = service.NewCartService(
		c.CartRepo,
		c.ProductRepo,
		c.PromotionRepo,
		c.InventoryService,
		c.QueueClient,
		c.Config.Shop.LowStockThreshold,
	)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.CartRepo, c.ProductRepo)
}

package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"hotel-backend/internal/config"
	infraCache "hotel-backend/internal/infrastructure/cache"
	"hotel-backend/internal/infrastructure/database"
	"hotel-backend/internal/infrastructure/queue"
	"hotel-backend/pkg/cache"
	"hotel-backend/pkg/clock"
	pkgdb "hotel-backend/pkg/database"
	"hotel-backend/pkg/logger"

	catalogRepo "hotel-backend/internal/domains/catalog/repository"
	catalogService "hotel-backend/internal/domains/catalog/service"
	customerRepo "hotel-backend/internal/domains/customer/repository"
	orderHandler "hotel-backend/internal/domains/order/handler"
	orderRepo "hotel-backend/internal/domains/order/repository"
	orderService "hotel-backend/internal/domains/order/service"
	promotionHandler "hotel-backend/internal/domains/promotion/handler"
	promotionJob "hotel-backend/internal/domains/promotion/job"
	promotionRepo "hotel-backend/internal/domains/promotion/repository"
	promotionService "hotel-backend/internal/domains/promotion/service"
)

// Container is the root of the dependency graph, shared by the API and the worker.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	AsynqClient *asynq.Client
	Clock       clock.Clock
	Location    *time.Location

	// Repositories
	CatalogRepo   catalogRepo.CatalogReader
	CustomerRepo  customerRepo.CustomerReader
	PromotionRepo promotionRepo.PromotionRepository
	OrderRepo     orderRepo.OrderRepository

	// Services
	PromotionService promotionService.ServiceInterface
	OrderService     orderService.OrderService

	// Handlers
	PromotionHandler *promotionHandler.PublicHandler
	OrderHandler     *orderHandler.OrderHandler

	// Jobs
	AuditUsageHandler *promotionJob.AuditUsageHandler
}

// NewContainer builds everything in dependency order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	logger.Info("Initializing container", nil)

	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	c.Clock = clock.NewRealClock()
	c.Location = cfg.Pricing.Location()
	logger.Info("Config loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
		"time_zone":   c.Location.String(),
	})

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("Container ready", nil)
	return c, nil
}

func (c *Container) initInfrastructure() error {
	db := database.NewPostgresDB(c.Config.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(ctx); err != nil {
			// The catalog falls back to Postgres when Redis is down.
			logger.Warn("Redis connection failed (non-critical)", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	c.Cache = redisCache

	c.AsynqClient = queue.NewClient(c.Config.Redis)
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CatalogRepo = catalogRepo.NewCachedCatalog(
		catalogRepo.NewPostgresCatalogRepository(pool),
		c.Cache,
		c.Config.Pricing.CatalogCacheTTL,
	)
	c.CustomerRepo = customerRepo.NewPostgresCustomerRepository(pool)
	c.PromotionRepo = promotionRepo.NewPostgresRepository(pool)
	c.OrderRepo = orderRepo.NewPostgresOrderRepository(pool)
}

func (c *Container) initServices() {
	evaluator := promotionService.NewEligibilityEvaluator(c.Location)

	c.PromotionService = promotionService.NewPromotionService(
		c.PromotionRepo,
		c.CustomerRepo,
		c.CatalogRepo,
		evaluator,
		c.Clock,
		c.Location,
	)

	c.OrderService = orderService.NewOrderService(orderService.Dependencies{
		Orders:     c.OrderRepo,
		Promotions: c.PromotionRepo,
		Customers:  c.CustomerRepo,
		Catalog:    c.CatalogRepo,
		Pricer:     catalogService.NewPriceCalculator(),
		Evaluator:  evaluator,
		Allocator:  promotionService.NewDiscountAllocator(c.Config.Pricing.CapAmountOff),
		Recorder:   promotionService.NewUsageRecorder(c.PromotionRepo),
		Tx:         pkgdb.NewTxManager(c.DB.Pool),
		Queue:      c.AsynqClient,
		AuditQueue: c.Config.Queue.AuditQueue,
		Clock:      c.Clock,
		Location:   c.Location,
	})
}

func (c *Container) initHandlers() {
	c.PromotionHandler = promotionHandler.NewPublicHandler(c.PromotionService)
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)
	c.AuditUsageHandler = promotionJob.NewAuditUsageHandler(c.PromotionRepo, c.Clock, c.Config.Audit.MaxUsesPerYear)
}

// Cleanup releases connections on shutdown.
func (c *Container) Cleanup() {
	logger.Info("Cleaning up container resources", nil)

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("Failed to close asynq client", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}

	logger.Info("Container cleanup completed", nil)
}

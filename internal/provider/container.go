package provider

import (
	"fmt"

	"github.com/peptide-store/internal/authz"
	"github.com/peptide-store/internal/cache"
	"github.com/peptide-store/internal/config"
	"github.com/peptide-store/internal/logger"
	"github.com/peptide-store/internal/metrics"
	"github.com/peptide-store/internal/queue"
	"github.com/peptide-store/internal/repository"
	"github.com/peptide-store/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	Cache       *cache.Store
	QueueClient *queue.Client
	Metrics     *metrics.Registry

	// Repositories
	UserRepo           repository.UserRepository
	ProductRepo        repository.ProductRepository
	MasterDataRepo     repository.MasterDataRepository
	CartRepo           repository.CartRepository
	OrderRepo          repository.OrderRepository
	PromotionRepo      repository.PromotionRepository
	PromotionUsageRepo repository.PromotionUsageRepository
	UnitOfWork         repository.UnitOfWork

	// Services
	AuthzService        *authz.Service
	Verifier            *service.SessionVerifier
	AuthService         *service.AuthService
	CaptchaService      *service.CaptchaService
	CatalogService      *service.CatalogService
	MasterDataService   *service.MasterDataService
	CartService         *service.CartService
	PromotionService    *service.PromotionService
	OrderService        *service.OrderService
	OrderAdminService   *service.OrderAdminService
	EmailService        *service.EmailService
	NotificationService *service.NotificationService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config, db *gorm.DB) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}

	// 缓存不可用时降级为直查数据库
	store := cache.NewStore(&cfg.Redis)
	if store.Enabled() {
		logger.Infow("provider_redis_enabled", "host", cfg.Redis.Host, "port", cfg.Redis.Port)
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

	var registry *metrics.Registry
	if cfg.Metrics.Enabled {
		registry = metrics.New(cfg.Metrics.Namespace)
	}

	c := &Container{
		Config:      cfg,
		DB:          db,
		Cache:       store,
		QueueClient: queueClient,
		Metrics:     registry,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repository.NewUserRepository(c.DB)
	c.ProductRepo = repository.NewProductRepository(c.DB)
	c.MasterDataRepo = repository.NewMasterDataRepository(c.DB)
	cartRepo := repository.NewCartRepository(c.DB)
	orderRepo := repository.NewOrderRepository(c.DB)
	usageRepo := repository.NewPromotionUsageRepository(c.DB)
	c.CartRepo = cartRepo
	c.OrderRepo = orderRepo
	c.PromotionUsageRepo = usageRepo
	c.PromotionRepo = repository.NewPromotionRepository(c.DB)
	c.UnitOfWork = repository.NewUnitOfWork(c.DB, cartRepo, orderRepo, usageRepo)
}

func (c *Container) initServices() error {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	if err := authzService.BootstrapBuiltinRoles(c.Config.Security.PromotionAdminOnly); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}
	c.AuthzService = authzService

	ttl := c.Config.Catalog.CacheTTLSeconds
	c.Verifier = service.NewSessionVerifier(c.Config.JWT)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, c.Verifier, c.AuthzService)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.Cache, ttl)
	c.MasterDataService = service.NewMasterDataService(c.MasterDataRepo, c.Cache, ttl)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.PromotionService = service.NewPromotionService(c.PromotionRepo, c.PromotionUsageRepo)
	c.EmailService = service.NewEmailService(&c.Config.Email)

	// 队列未启用时不能传入 nil 指针，否则接口判空失效
	var enqueuer service.ConfirmationEnqueuer
	if c.QueueClient != nil {
		enqueuer = c.QueueClient
	}
	c.NotificationService = service.NewNotificationService(enqueuer, c.EmailService, c.Config.Email.Confirmation, c.Metrics)

	c.OrderService = service.NewOrderService(service.OrderServiceOptions{
		UnitOfWork: c.UnitOfWork,
		CartRepo:   c.CartRepo,
		OrderRepo:  c.OrderRepo,
		MasterRepo: c.MasterDataRepo,
		Promotions: c.PromotionService,
		Notifier:   c.NotificationService,
		Codes:      service.NewOrderCodeGenerator(c.Config.Order.CodePrefix),
		Metrics:    c.Metrics,
	})
	c.OrderAdminService = service.NewOrderAdminService(c.OrderRepo, c.UserRepo, c.Metrics)
	return nil
}

// Close 释放外部连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
	if err := c.Cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}

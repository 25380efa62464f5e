package provider

import (
	"github.com/vastrika/vastrika-api/internal/cache"
	"github.com/vastrika/vastrika-api/internal/config"
	"github.com/vastrika/vastrika-api/internal/logger"
	"github.com/vastrika/vastrika-api/internal/models"
	"github.com/vastrika/vastrika-api/internal/queue"
	"github.com/vastrika/vastrika-api/internal/repository"
	"github.com/vastrika/vastrika-api/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo            repository.AdminRepository
	UserRepo             repository.UserRepository
	SecurityQuestionRepo repository.SecurityQuestionRepository
	CategoryRepo         repository.CategoryRepository
	ProductRepo          repository.ProductRepository
	CartRepo             repository.CartRepository
	FavoriteRepo         repository.FavoriteRepository
	OrderRepo            repository.OrderRepository
	SettingRepo          repository.SettingRepository

	// Services
	AuthService       *service.AuthService
	UserAuthService   *service.UserAuthService
	EmailService      *service.EmailService
	UploadService     *service.UploadService
	ProductService    *service.ProductService
	CategoryService   *service.CategoryService
	SettingService    *service.SettingService
	CartService       *service.CartService
	FavoriteService   *service.FavoriteService
	OrderService      *service.OrderService
	GuestStateService *service.GuestStateService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
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

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.SecurityQuestionRepo = repository.NewSecurityQuestionRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.FavoriteRepo = repository.NewFavoriteRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.SecurityQuestionRepo, c.QueueClient)
	c.UploadService = service.NewUploadService(c.Config)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.FavoriteService = service.NewFavoriteService(c.FavoriteRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.ProductRepo, c.QueueClient, c.SettingService)

	// 游客状态优先落 Redis，Redis 不可用时退化为进程内存储
	var guestStore service.GuestStateStore
	if cache.Enabled() {
		guestStore = service.NewRedisGuestStateStore()
	} else {
		logger.Warnw("provider_guest_state_fallback_memory")
		guestStore = service.NewMemoryGuestStateStore()
	}
	c.GuestStateService = service.NewGuestStateService(c.Config, guestStore)
}

package provider

import (
	"context"

	"github.com/wakaf-tunai/internal/authz"
	"github.com/wakaf-tunai/internal/cache"
	"github.com/wakaf-tunai/internal/certificate"
	"github.com/wakaf-tunai/internal/config"
	"github.com/wakaf-tunai/internal/logger"
	"github.com/wakaf-tunai/internal/models"
	"github.com/wakaf-tunai/internal/notify"
	"github.com/wakaf-tunai/internal/queue"
	"github.com/wakaf-tunai/internal/repository"
	"github.com/wakaf-tunai/internal/service"
	"github.com/wakaf-tunai/internal/storage"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	FileStore   storage.FileStore
	Renderer    *certificate.Renderer
	Sender      notify.Sender

	// Repositories
	AdminRepo    repository.AdminRepository
	DonationRepo repository.DonationRepository
	SettingRepo  repository.SettingRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	AdminUserService    *service.AdminUserService
	CaptchaService      *service.CaptchaService
	SettingService      *service.SettingService
	NotificationService *service.NotificationService
	DonationService     *service.DonationService
}

// Infra 容器依赖的外部设施
type Infra struct {
	QueueClient *queue.Client
	FileStore   storage.FileStore
	Renderer    *certificate.Renderer
	Sender      notify.Sender
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	cache.InitRedis(&cfg.Redis)

	store, err := storage.New(context.Background(), cfg.Storage)
	if err != nil {
		logger.Errorw("provider_init_storage_failed", "driver", cfg.Storage.Driver, "error", err)
		panic(err)
	}

	renderer, err := certificate.NewRenderer(cfg.Certificate)
	if err != nil {
		logger.Errorw("provider_init_certificate_renderer_failed", "error", err)
		panic(err)
	}

	return NewContainerWithInfra(cfg, models.DB, Infra{
		QueueClient: queue.NewClient(&cfg.Queue),
		FileStore:   store,
		Renderer:    renderer,
		Sender:      notify.NewWhatsAppClient(cfg.Notify),
	})
}

// NewContainerWithInfra 使用给定的数据库与外部设施组装容器
func NewContainerWithInfra(cfg *config.Config, db *gorm.DB, infra Infra) *Container {
	c := &Container{
		Config:      cfg,
		QueueClient: infra.QueueClient,
		FileStore:   infra.FileStore,
		Renderer:    infra.Renderer,
		Sender:      infra.Sender,
	}
	if c.QueueClient == nil {
		c.QueueClient = queue.NewClient(nil)
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	c.initServices(db)

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.DonationRepo = repository.NewDonationRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices(db *gorm.DB) {
	authzService, err := authz.NewService(db)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService

	adminIDs, err := c.AdminRepo.ListIDs()
	if err != nil {
		logger.Errorw("provider_list_admin_ids_failed", "error", err)
		panic(err)
	}
	if err := c.AuthzService.Bootstrap(adminIDs); err != nil {
		logger.Errorw("provider_bootstrap_authz_failed", "error", err)
		panic(err)
	}

	c.SettingService = service.NewSettingService(c.SettingRepo, c.Config.Donation.VoucherPrice)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.AdminUserService = service.NewAdminUserService(c.AdminRepo, c.AuthService, c.AuthzService)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.NotificationService = service.NewNotificationService(c.Config.Donation, c.Sender, c.QueueClient, c.Config.Notify.Async)
	c.DonationService = service.NewDonationService(
		c.Config,
		c.DonationRepo,
		c.SettingService,
		c.NotificationService,
		c.FileStore,
		c.Renderer,
	)
}

package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"kcstudio/storefront/internal/app/config"
	"kcstudio/storefront/internal/app/domains/modules/mdadmin"
	"kcstudio/storefront/internal/app/domains/modules/mdimage"
	"kcstudio/storefront/internal/app/domains/modules/mdnotify"
	"kcstudio/storefront/internal/app/domains/modules/mdorder"
	"kcstudio/storefront/internal/app/domains/modules/mdpayment"
	"kcstudio/storefront/internal/app/domains/modules/mdproduct"
	"kcstudio/storefront/internal/app/domains/repo/rpadmin"
	"kcstudio/storefront/internal/app/domains/repo/rporder"
	"kcstudio/storefront/internal/app/domains/repo/rppayment"
	"kcstudio/storefront/internal/app/domains/repo/rpproduct"
	"kcstudio/storefront/internal/app/domains/repo/rptx"
	"kcstudio/storefront/internal/app/domains/services/svadmin"
	"kcstudio/storefront/internal/app/domains/services/svorder"
	"kcstudio/storefront/internal/app/domains/services/svpayment"
	"kcstudio/storefront/internal/app/domains/services/svproduct"
	"kcstudio/storefront/internal/app/infra/imagehost"
	"kcstudio/storefront/internal/app/infra/mq/lmstfy"
	"kcstudio/storefront/internal/app/infra/payment"
	"kcstudio/storefront/internal/app/infra/persistence/mysql"
	"kcstudio/storefront/internal/app/infra/persistence/redis"
	"kcstudio/storefront/internal/app/pkg/authx"
	"kcstudio/storefront/internal/app/pkg/idgen"
	"kcstudio/storefront/internal/app/pkg/logger"
	adminhandler "kcstudio/storefront/internal/app/server/handlers/admin"
	orderhandler "kcstudio/storefront/internal/app/server/handlers/order"
	paymenthandler "kcstudio/storefront/internal/app/server/handlers/payment"
	producthandler "kcstudio/storefront/internal/app/server/handlers/product"
	"kcstudio/storefront/internal/app/server/routers"
)

// App 应用容器
type App struct {
	Engine *gin.Engine
}

// InitializeApp 按 infra -> repo -> module -> service -> handler 的顺序组装应用
// 返回的 cleanup 负责关闭外部连接
func InitializeApp(cfg *config.Config, log logger.Logger) (*App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// 1. 数据库
	db, err := mysql.Open(cfg.MySQL)
	if err != nil {
		return nil, nil, fmt.Errorf("init database failed: %w", err)
	}
	closers = append(closers, func() { _ = mysql.Close(db) })
	if err := mysql.Migrate(db); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("migrate database failed: %w", err)
	}
	log.Info("database connected")

	// 2. 事件广播：配置了 Redis 用 Redis，否则进程内广播
	var bus mdnotify.EventBus = mdnotify.NewMemoryBus()
	if cfg.Redis.Addr != "" {
		redisClient, err := redis.NewPubSubClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("init redis failed: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })
		bus = mdnotify.NewRedisEventBus(redisClient)
		log.Info("redis connected", "addr", cfg.Redis.Addr)
	} else {
		log.Warn("redis not configured, using in-process event bus")
	}

	// 3. 通知队列（可选）
	var queue mdnotify.JobQueue
	if cfg.Lmstfy.Host != "" {
		queue = lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
		log.Info("lmstfy client initialized", "namespace", cfg.Lmstfy.Namespace, "queue", cfg.Lmstfy.NotifyQueue)
	} else {
		log.Warn("lmstfy not configured, order notifications disabled")
	}

	// 4. 图片存储
	store, err := imagehost.NewLocalStore(cfg.Uploads.Dir)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	var host mdimage.ImageHost
	if cfg.CloudinaryEnabled() {
		cld, err := imagehost.NewCloudinaryHost(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret, cfg.Cloudinary.Folder)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("init cloudinary failed: %w", err)
		}
		host = cld
		log.Info("cloudinary enabled", "folder", cfg.Cloudinary.Folder)
	} else {
		log.Warn("cloudinary not configured, images stored locally", "dir", store.Dir())
	}

	// 5. 支付网关（可选）
	var gateway mdpayment.Gateway
	if cfg.Stripe.SecretKey != "" {
		gateway = payment.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
		log.Info("stripe gateway enabled", "currency", cfg.Stripe.Currency)
	} else {
		log.Warn("stripe not configured, payment endpoints return 503")
	}

	// 6. Repository
	orderRepo := rporder.NewOrderRepository(db)
	productRepo := rpproduct.NewProductRepository(db)
	adminRepo := rpadmin.NewAdminRepository(db)
	eventRepo := rppayment.NewPaymentEventRepository(db)

	// 7. Module
	orderModule := mdorder.NewOrderModule(rptx.NewGormTransactor(db), orderRepo, idgen.NewOrderNumberGenerator())
	imageModule := mdimage.NewImageModule(host, store, cfg.App.PublicBaseURL, log)
	notifyModule := mdnotify.NewNotifyModule(bus, queue, cfg.Lmstfy.NotifyQueue, log)
	adminModule := mdadmin.NewAdminModule(adminRepo, authx.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL))
	productModule := mdproduct.NewProductModule(productRepo)
	paymentModule := mdpayment.NewPaymentModule(gateway, eventRepo, cfg.Stripe.Currency)

	// 8. Service
	orderService := svorder.NewOrderService(orderModule, imageModule, notifyModule, log)
	productService := svproduct.NewProductService(productModule)
	adminService := svadmin.NewAdminService(adminModule, orderModule, notifyModule, log)
	paymentService := svpayment.NewPaymentService(paymentModule, orderModule, notifyModule, log)

	// 9. Handler + Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := routers.SetupRoutes(
		routers.Options{
			ServiceName:  cfg.App.Name,
			CORSOrigins:  cfg.Server.CORSOrigins,
			MaxBodyBytes: int64(cfg.Server.MaxBodyMB) << 20,
			DevDetails:   !cfg.IsProduction(),
			UploadsDir:   store.Dir(),
		},
		routers.Handlers{
			Order:   orderhandler.NewOrderHandler(orderService),
			Product: producthandler.NewProductHandler(productService),
			Admin:   adminhandler.NewAdminHandler(adminService, log),
			Payment: paymenthandler.NewPaymentHandler(paymentService),
		},
		adminService,
		log,
	)

	return &App{Engine: engine}, cleanup, nil
}

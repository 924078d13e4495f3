package bootstrap

import (
	"context"
	"log"

	"vistratv-be/internal/config"
	"vistratv-be/internal/controller"
	"vistratv-be/internal/handler"
	"vistratv-be/internal/pkg/logger"
	"vistratv-be/internal/pkg/mailer"
	"vistratv-be/internal/repository/implementation"
	"vistratv-be/internal/repository/unitofwork"
	"vistratv-be/internal/service"
	"vistratv-be/internal/websocket"
	pktNats "vistratv-be/pkg/nats"
	"vistratv-be/pkg/paygate"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	OAuthController        controller.IOAuthController
	PlanController         controller.IPlanController
	PaymentController      controller.IPaymentController
	WebhookController      controller.IWebhookController
	SubscriptionController controller.ISubscriptionController
	PromoController        controller.IPromoController
	AffiliateController    controller.IAffiliateController
	AdminController        controller.IAdminController

	// Background Services (Exposed for main.go to run)
	MailWorkerService service.IMailWorkerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Payment Gateway
	paygateClient := paygate.NewClient(cfg.Paygate.BaseURL, cfg.Paygate.APIKey)

	// 3. Services
	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	oauthService := service.NewOAuthService(uowFactory, sysLogger)
	planService := service.NewPlanService(uowFactory, rdb, sysLogger)
	promoService := service.NewPromoService(uowFactory)
	paymentService := service.NewPaymentService(
		uowFactory,
		paygateClient,
		promoService,
		sysLogger,
		cfg.App.BaseURL,
		cfg.App.ClientURL,
	)
	subscriptionService := service.NewSubscriptionService(
		uowFactory,
		paygateClient,
		sysLogger,
		cfg.App.BaseURL,
		cfg.App.ClientURL,
	)
	affiliateService := service.NewAffiliateService(uowFactory, sysLogger)
	adminService := service.NewAdminService(uowFactory, subscriptionService, sysLogger)

	webhookService := service.NewWebhookService(
		uowFactory,
		service.WebhookConfig{
			PaygateSecret:     cfg.Paygate.WebhookSecret,
			AllowUnsigned:     cfg.Paygate.AllowUnsigned,
			MidtransServerKey: cfg.Midtrans.ServerKey,
			IsProduction:      cfg.IsProduction(),
		},
		pubSub,
		natsPub,
		sysLogger,
	)

	mailWorkerService := service.NewMailWorkerService(
		pubSub,
		service.MailTopicName,
		emailService,
		sysLogger,
	)

	// 3.5 Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger)

	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		AuthController:         controller.NewAuthController(authService),
		OAuthController:        controller.NewOAuthController(oauthService),
		PlanController:         controller.NewPlanController(planService),
		PaymentController:      controller.NewPaymentController(paymentService),
		WebhookController:      controller.NewWebhookController(webhookService),
		SubscriptionController: controller.NewSubscriptionController(subscriptionService),
		PromoController:        controller.NewPromoController(promoService),
		AffiliateController:    controller.NewAffiliateController(affiliateService),
		AdminController:        controller.NewAdminController(adminService, authService, planService, promoService),

		MailWorkerService: mailWorkerService,
	}
}

package bootstrap

import (
	"context"
	"log"

	"vc-copilot-be/internal/config"
	"vc-copilot-be/internal/controller"
	"vc-copilot-be/internal/handler"
	"vc-copilot-be/internal/pkg/logger"
	"vc-copilot-be/internal/pkg/mailer"
	"vc-copilot-be/internal/repository/unitofwork"
	"vc-copilot-be/internal/service"
	"vc-copilot-be/internal/websocket"
	"vc-copilot-be/pkg/docstore"
	"vc-copilot-be/pkg/embedding"
	"vc-copilot-be/pkg/embedding/jina"
	"vc-copilot-be/pkg/llm/factory"
	"vc-copilot-be/pkg/persona"
	"vc-copilot-be/pkg/responder"
	"vc-copilot-be/pkg/session"

	pktNats "vc-copilot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	ChatController     controller.IChatController
	DocumentController controller.IDocumentController
	AnalysisController controller.IAnalysisController
	HealthController   controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	SessionSweeper  *session.Sweeper

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

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

	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else if cfg.Ai.EmbeddingProvider == "jina" {
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// Initialize LLM Provider based on Config.
	// Chats fail with a config error instead of the whole app refusing to
	// boot, so a missing key is a warning here.
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		persona.GetConfig(persona.SharkVC).Model,
		cfg.Ai.LLMBaseURL,
		cfg.Keys.OpenRouter,
	)
	if err != nil {
		log.Printf("[WARN] LLM Provider unavailable, chats will return a configuration error: %v", err)
		llmProvider = nil
	} else {
		log.Printf("[INFO] Using LLM Provider: %s", cfg.Ai.LLMProvider)
	}

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

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedDocsTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedDocsTopic,
		uowFactory,
		embeddingProvider,
	)

	docStore := docstore.NewStore(uowFactory, embeddingProvider, publisherService, sysLogger)

	registry := session.NewRegistry(docStore, cfg.Session.TokenBudget, sysLogger)
	sweeper := session.NewSweeper(registry, cfg.Session.SweepInterval, cfg.Session.IdleTimeout, sysLogger)

	resp := responder.New(llmProvider, responder.DefaultTimeout, sysLogger)

	chatService := service.NewChatService(registry, resp, docStore, sysLogger)
	analysisService := service.NewAnalysisService(docStore, uowFactory, sysLogger)
	documentService := service.NewDocumentService(docStore, registry, analysisService, natsPub, sysLogger)
	authService := service.NewAuthService(emailService, cfg.App.JwtSecret, sysLogger)

	// 3.5 Notification System
	notifService := service.NewNotificationService(natsSub, wsHub, sysLogger)
	if natsSub != nil {
		go notifService.Start()
	}
	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		ChatController:     controller.NewChatController(chatService),
		DocumentController: controller.NewDocumentController(documentService),
		AnalysisController: controller.NewAnalysisController(analysisService),
		HealthController:   controller.NewHealthController(db, registry),

		ConsumerService: consumerService,
		SessionSweeper:  sweeper,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}

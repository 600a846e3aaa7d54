package bootstrap

import (
	"context"
	"fmt"
	"log"
	"os"

	"ai-assistant-be/internal/config"
	"ai-assistant-be/internal/constant"
	"ai-assistant-be/internal/controller"
	"ai-assistant-be/internal/pkg/logger"
	"ai-assistant-be/internal/repository/contract"
	"ai-assistant-be/internal/repository/implementation"
	"ai-assistant-be/internal/repository/memory"
	"ai-assistant-be/internal/service"
	"ai-assistant-be/internal/websocket"
	"ai-assistant-be/pkg/llm"
	"ai-assistant-be/pkg/llm/ollama"
	"ai-assistant-be/pkg/llm/sarvam"
	"ai-assistant-be/pkg/stt/whisper"
	"ai-assistant-be/pkg/tts/parler"

	pktNats "ai-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	HealthController    controller.IHealthController
	ChatController      controller.IChatController
	FileController      controller.IFileController
	TranslateController controller.ITranslateController

	// Background services (exposed for main.go to run)
	NotificationService service.INotificationService

	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS (optional: cross-instance delivery bridge)
	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		}
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		}
	}

	// Redis backs the session catalogs; without it, catalogs live only in
	// process memory.
	var kvStore contract.KeyValueStore
	if cfg.App.RedisURL != "" {
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
		kvStore = implementation.NewRedisKeyValueStore(rdb, "assistant")
	} else {
		log.Printf("[WARN] No REDIS_URL configured, session catalogs are process-local")
		kvStore = memory.NewKeyValueStore()
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(wsLogger)
	go wsHub.Run()

	// Model tiers: Sarvam handles short Indic-language turns, Ollama the rest.
	var lightProvider llm.LLMProvider
	if cfg.Ai.SarvamBaseURL != "" {
		lightProvider = sarvam.NewSarvamProvider(cfg.Ai.SarvamBaseURL, cfg.Ai.SarvamModel)
	} else {
		log.Printf("[WARN] No SARVAM_BASE_URL configured, all turns go to the heavy model")
	}
	heavyProvider := ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	router := llm.NewRouter(lightProvider, heavyProvider)

	sttClient := whisper.NewClient(cfg.Ai.WhisperURL)
	ttsClient := parler.NewClient(cfg.Ai.TTSURL)

	instanceId := instanceIdentity()
	publisherService := service.NewPublisherService(constant.TurnEventsTopicName, instanceId, pubSub)
	notificationService := service.NewNotificationService(
		pubSub,
		constant.TurnEventsTopicName,
		instanceId,
		wsHub,
		natsPub,
		natsSub,
		wsLogger,
	)

	documentRepo := implementation.NewDocumentRepository(db)
	documentService := service.NewDocumentService(documentRepo, cfg.App.UploadsDir, sysLogger)

	sessionService := service.NewSessionService(kvStore, sysLogger)

	textResponder := service.NewLLMTextResponder(router, documentService, sysLogger)
	voiceResponder := service.NewVoiceResponder(sttClient, ttsClient, textResponder, cfg.App.AudioDir, sysLogger)
	uploadResponder := service.NewUploadResponder(documentService)

	turnObserver := service.NewEventTurnObserver(publisherService, sysLogger)
	turnService := service.NewTurnService(
		sessionService,
		textResponder,
		voiceResponder,
		uploadResponder,
		turnObserver,
		sysLogger,
	)

	translateService := service.NewTranslateService(router, ttsClient, sysLogger)

	healthEndpoints := map[string]string{
		"ollama":  cfg.Ai.OllamaBaseURL,
		"whisper": cfg.Ai.WhisperURL,
		"tts":     cfg.Ai.TTSURL,
	}
	if cfg.Ai.SarvamBaseURL != "" {
		healthEndpoints["sarvam"] = cfg.Ai.SarvamBaseURL
	}

	return &Container{
		HealthController:    controller.NewHealthController(db, healthEndpoints),
		ChatController:      controller.NewChatController(sessionService, turnService),
		FileController:      controller.NewFileController(documentService),
		TranslateController: controller.NewTranslateController(translateService),
		NotificationService: notificationService,
		WebSocketHub:        wsHub,
	}
}

// instanceIdentity names this process on the cross-instance bridge.
func instanceIdentity() string {
	host, err := os.Hostname()
	if err != nil {
		host = "assistant"
	}
	return fmt.Sprintf("%s-%s", host, uuid.New().String()[:8])
}

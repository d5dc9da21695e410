package bootstrap

import (
	"context"
	"log"

	"notechat-be/internal/config"
	"notechat-be/internal/controller"
	"notechat-be/internal/pkg/logger"
	"notechat-be/internal/repository/unitofwork"
	"notechat-be/internal/service"
	"notechat-be/pkg/llm/factory"
	"notechat-be/pkg/storage"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteController controller.INoteController
	ChatController controller.IChatController

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. File Storage
	var fileStore storage.FileStore
	if cfg.Storage.Provider == "s3" {
		s3Store, err := storage.NewS3Store(context.Background(), storage.S3Config{
			Region:       cfg.Storage.S3Region,
			Bucket:       cfg.Storage.S3Bucket,
			AccessKey:    cfg.Storage.S3AccessKey,
			SecretKey:    cfg.Storage.S3SecretKey,
			BaseEndpoint: cfg.Storage.S3Endpoint,
			PublicURL:    cfg.Storage.S3PublicURL,
		})
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize S3 store: %v", err)
		}
		fileStore = s3Store
		log.Printf("[INFO] Using File Store: S3 (%s)", cfg.Storage.S3Bucket)
	} else {
		fileStore = storage.NewLocalStore(cfg.Storage.UploadDir, cfg.App.BaseURL)
		log.Printf("[INFO] Using File Store: LOCAL (%s)", cfg.Storage.UploadDir)
	}

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Services
	noteService := service.NewNoteService(uowFactory, fileStore, llmProvider, sysLogger)
	chatService := service.NewChatService(uowFactory, llmProvider, sysLogger)

	// 5. Controllers
	return &Container{
		NoteController: controller.NewNoteController(noteService),
		ChatController: controller.NewChatController(chatService),
		Logger:         sysLogger,
	}
}

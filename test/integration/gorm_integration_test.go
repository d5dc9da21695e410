package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"notechat-be/internal/entity"
	"notechat-be/internal/repository/specification"
	"notechat-be/internal/repository/unitofwork"
	"notechat-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.NoteRepository())
	assert.NotNil(t, uow.ChatMessageRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Note Repository", func(t *testing.T) {
		count, err := uow.NoteRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Note count: %d", count)
	})

	t.Run("Check Chat Message Repository", func(t *testing.T) {
		count, err := uow.ChatMessageRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("ChatMessage count: %d", count)
	})

	t.Run("Check Transactional Note With Chat Message", func(t *testing.T) {
		ctx := context.Background()
		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		noteId := uuid.New()
		text := "Integration test note content"
		note := &entity.Note{
			Id:               noteId,
			Title:            "integration-" + uuid.New().String() + ".jpg",
			OriginalFileURL:  "http://localhost/uploads/integration.jpg",
			FileType:         entity.FileTypeImage,
			ExtractedText:    &text,
			ProcessingStatus: entity.ProcessingStatusCompleted,
		}

		err = uow.NoteRepository().Create(ctx, note)
		assert.NoError(t, err)

		message := &entity.ChatMessage{
			Id:            uuid.New(),
			NoteId:        noteId,
			Message:       "What does this note say?",
			IsUserMessage: true,
		}

		err = uow.ChatMessageRepository().Create(ctx, message)
		assert.NoError(t, err)

		// Visible inside the transaction before commit
		found, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId})
		assert.NoError(t, err)
		assert.NotNil(t, found)

		err = uow.Commit()
		assert.NoError(t, err)

		t.Log("Successfully created Note with ChatMessage in Transaction")
	})
}

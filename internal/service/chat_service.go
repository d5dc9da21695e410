package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"notechat-be/internal/constant"
	"notechat-be/internal/dto"
	"notechat-be/internal/entity"
	"notechat-be/internal/pkg/logger"
	"notechat-be/internal/repository/specification"
	"notechat-be/internal/repository/unitofwork"
	"notechat-be/pkg/llm"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type IChatService interface {
	GetChatHistory(ctx context.Context, noteId uuid.UUID) ([]*dto.ChatMessageResponse, error)
	SendChat(ctx context.Context, noteId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
}

type chatService struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	log         logger.ILogger

	// Completed notes are immutable, so their extracted text can be cached
	// across chat turns.
	noteCache *gocache.Cache

	// Per-note awaiting-reply guard: a second submission while a reply is
	// pending is refused.
	mu      sync.Mutex
	pending map[uuid.UUID]struct{}
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		log:         log,
		noteCache:   gocache.New(5*time.Minute, 10*time.Minute),
		pending:     make(map[uuid.UUID]struct{}),
	}
}

func (s *chatService) GetChatHistory(ctx context.Context, noteId uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByNoteID{NoteID: noteId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		id := m.Id
		response = append(response, &dto.ChatMessageResponse{
			Id:            &id,
			NoteId:        m.NoteId,
			Message:       m.Message,
			IsUserMessage: m.IsUserMessage,
			CreatedAt:     m.CreatedAt,
		})
	}

	return response, nil
}

func (s *chatService) SendChat(ctx context.Context, noteId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	note, err := s.getReadyNote(ctx, noteId)
	if err != nil {
		return nil, err
	}

	if !s.acquireReply(noteId) {
		return nil, ErrReplyPending
	}
	defer s.releaseReply(noteId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	userMessage := entity.ChatMessage{
		Id:            uuid.New(),
		NoteId:        noteId,
		Message:       message,
		IsUserMessage: true,
		CreatedAt:     now,
	}

	userResponse := dto.ChatMessageResponse{
		NoteId:        noteId,
		Message:       message,
		IsUserMessage: true,
		CreatedAt:     now,
	}

	// The user message stays in the conversation even if persistence fails;
	// the failure is logged and the turn continues.
	if err := uow.ChatMessageRepository().Create(ctx, &userMessage); err != nil {
		s.log.Error("chat", "failed to persist user message", map[string]interface{}{
			"note_id": noteId,
			"error":   err.Error(),
		})
	} else {
		id := userMessage.Id
		userResponse.Id = &id
	}

	prompt := fmt.Sprintf(constant.ChatPromptTemplateV1, *note.ExtractedText, message)

	replyText, err := s.llmProvider.Generate(ctx, prompt)
	if err != nil {
		s.log.Error("chat", "inference failed", map[string]interface{}{
			"note_id": noteId,
			"error":   err.Error(),
		})
		// Fixed fallback reply, shown but never persisted.
		return &dto.SendChatResponse{
			UserMessage: userResponse,
			Reply: dto.ChatMessageResponse{
				NoteId:        noteId,
				Message:       constant.ChatFallbackMessageV1,
				IsUserMessage: false,
				CreatedAt:     time.Now(),
			},
		}, nil
	}

	reply := entity.ChatMessage{
		Id:            uuid.New(),
		NoteId:        noteId,
		Message:       replyText,
		IsUserMessage: false,
		CreatedAt:     time.Now(),
	}

	replyResponse := dto.ChatMessageResponse{
		NoteId:        noteId,
		Message:       replyText,
		IsUserMessage: false,
		CreatedAt:     reply.CreatedAt,
	}

	if err := uow.ChatMessageRepository().Create(ctx, &reply); err != nil {
		s.log.Error("chat", "failed to persist assistant message", map[string]interface{}{
			"note_id": noteId,
			"error":   err.Error(),
		})
	} else {
		id := reply.Id
		replyResponse.Id = &id
	}

	return &dto.SendChatResponse{
		UserMessage: userResponse,
		Reply:       replyResponse,
	}, nil
}

// getReadyNote returns the note if it exists and has completed extraction.
func (s *chatService) getReadyNote(ctx context.Context, noteId uuid.UUID) (*entity.Note, error) {
	cacheKey := noteId.String()
	if cached, ok := s.noteCache.Get(cacheKey); ok {
		return cached.(*entity.Note), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	if !note.Ready() {
		return nil, ErrNoteNotReady
	}

	s.noteCache.Set(cacheKey, note, gocache.DefaultExpiration)
	return note, nil
}

func (s *chatService) acquireReply(noteId uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.pending[noteId]; busy {
		return false
	}
	s.pending[noteId] = struct{}{}
	return true
}

func (s *chatService) releaseReply(noteId uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, noteId)
}

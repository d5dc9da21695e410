package service

import (
	"bytes"
	"context"
	"strings"
	"sync/atomic"
	"time"

	"notechat-be/internal/constant"
	"notechat-be/internal/dto"
	"notechat-be/internal/entity"
	"notechat-be/internal/pkg/logger"
	"notechat-be/internal/repository/specification"
	"notechat-be/internal/repository/unitofwork"
	"notechat-be/pkg/llm"
	"notechat-be/pkg/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type UploadNoteInput struct {
	Filename    string
	ContentType string // declared media type, may be empty or generic
	Data        []byte
}

type INoteService interface {
	ProcessUpload(ctx context.Context, input *UploadNoteInput) (*dto.NoteResponse, error)
	GetLatest(ctx context.Context) (*dto.NoteResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error)
}

type noteService struct {
	uowFactory  unitofwork.RepositoryFactory
	fileStore   storage.FileStore
	llmProvider llm.LLMProvider
	log         logger.ILogger

	// Guards the whole upload-to-extraction sequence: a second upload
	// while one is in flight is refused, not queued.
	processing atomic.Bool
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	fileStore storage.FileStore,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:  uowFactory,
		fileStore:   fileStore,
		llmProvider: llmProvider,
		log:         log,
	}
}

// resolveMediaType returns the effective media type and the derived file type.
// The declared type wins when usable; otherwise the content is sniffed.
func resolveMediaType(declared string, data []byte) (string, entity.FileType, error) {
	mediaType := declared
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = mimetype.Detect(data).String()
	}
	// Strip parameters like "; charset=..."
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}

	switch {
	case strings.HasPrefix(mediaType, "image/"):
		return mediaType, entity.FileTypeImage, nil
	case mediaType == "application/pdf":
		return mediaType, entity.FileTypePdf, nil
	default:
		return "", "", ErrUnsupportedFileType
	}
}

func (s *noteService) ProcessUpload(ctx context.Context, input *UploadNoteInput) (*dto.NoteResponse, error) {
	// Media type check happens before anything else: a rejected file must
	// cause no upload and no note row.
	mediaType, fileType, err := resolveMediaType(input.ContentType, input.Data)
	if err != nil {
		return nil, err
	}

	if !s.processing.CompareAndSwap(false, true) {
		return nil, ErrUploadInFlight
	}
	defer s.processing.Store(false)

	fileURL, err := s.fileStore.Save(ctx, input.Filename, mediaType, bytes.NewReader(input.Data))
	if err != nil {
		// Upload failure aborts the whole flow: no note row exists yet.
		s.log.Error("note", "file upload failed", map[string]interface{}{
			"filename": input.Filename,
			"error":    err.Error(),
		})
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	note := entity.Note{
		Id:               uuid.New(),
		Title:            input.Filename,
		OriginalFileURL:  fileURL,
		FileType:         fileType,
		ProcessingStatus: entity.ProcessingStatusProcessing,
		CreatedAt:        time.Now(),
	}
	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	// The note row is persisted in "processing" before extraction runs, so
	// clients polling the latest note see the status indicator right away.
	s.extract(ctx, uow, &note, fileURL, mediaType)

	res := toNoteResponse(&note)
	return &res, nil
}

// extract runs the extraction call and moves the note to its terminal status.
// Extraction failure is terminal for this attempt; recovery is a re-upload.
func (s *noteService) extract(ctx context.Context, uow unitofwork.UnitOfWork, note *entity.Note, fileURL, mediaType string) {
	if note.ProcessingStatus.IsTerminal() {
		return
	}

	text, err := s.llmProvider.GenerateFromFiles(ctx, constant.ExtractionPromptV1, []llm.FileRef{
		{URL: fileURL, MimeType: mediaType},
	})

	now := time.Now()
	note.UpdatedAt = &now

	if err != nil {
		s.log.Error("note", "text extraction failed", map[string]interface{}{
			"note_id": note.Id,
			"error":   err.Error(),
		})
		note.ProcessingStatus = entity.ProcessingStatusFailed
	} else {
		note.ExtractedText = &text
		note.ProcessingStatus = entity.ProcessingStatusCompleted
	}

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		s.log.Error("note", "failed to update note status", map[string]interface{}{
			"note_id": note.Id,
			"status":  note.ProcessingStatus,
			"error":   err.Error(),
		})
	}
}

func (s *noteService) GetLatest(ctx context.Context) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{Count: 1},
	)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, nil
	}

	res := toNoteResponse(notes[0])
	return &res, nil
}

func (s *noteService) Show(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	res := toNoteResponse(note)
	return &res, nil
}

func toNoteResponse(n *entity.Note) dto.NoteResponse {
	return dto.NoteResponse{
		Id:               n.Id,
		Title:            n.Title,
		OriginalFileURL:  n.OriginalFileURL,
		FileType:         string(n.FileType),
		ExtractedText:    n.ExtractedText,
		ProcessingStatus: string(n.ProcessingStatus),
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
	}
}

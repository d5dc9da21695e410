package service

import (
	"context"
	"io"
	"sort"

	"notechat-be/internal/entity"
	"notechat-be/internal/repository/contract"
	"notechat-be/internal/repository/specification"
	"notechat-be/internal/repository/unitofwork"
	"notechat-be/pkg/llm"

	"github.com/google/uuid"
)

// --- Repository fakes ---

type fakeNoteRepo struct {
	notes     []*entity.Note
	createErr error
	updateErr error
	updates   []entity.ProcessingStatus
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *entity.Note) error {
	if r.createErr != nil {
		return r.createErr
	}
	stored := *note
	r.notes = append(r.notes, &stored)
	return nil
}

func (r *fakeNoteRepo) Update(ctx context.Context, note *entity.Note) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updates = append(r.updates, note.ProcessingStatus)
	for i, n := range r.notes {
		if n.Id == note.Id {
			stored := *note
			r.notes[i] = &stored
			return nil
		}
	}
	return nil
}

func (r *fakeNoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	// Fakes only support lookups the services actually perform: by id via
	// specification.ByID.
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			for _, n := range r.notes {
				if n.Id == byID.ID {
					copied := *n
					return &copied, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	result := make([]*entity.Note, len(r.notes))
	copy(result, r.notes)

	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			sort.SliceStable(result, func(i, j int) bool {
				if s.Desc {
					return result[i].CreatedAt.After(result[j].CreatedAt)
				}
				return result[i].CreatedAt.Before(result[j].CreatedAt)
			})
		case specification.Limit:
			if len(result) > s.Count {
				result = result[:s.Count]
			}
		}
	}
	return result, nil
}

func (r *fakeNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.notes)), nil
}

type fakeChatMessageRepo struct {
	messages  []*entity.ChatMessage
	createErr error
}

func (r *fakeChatMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	if r.createErr != nil {
		return r.createErr
	}
	stored := *message
	r.messages = append(r.messages, &stored)
	return nil
}

func (r *fakeChatMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var result []*entity.ChatMessage
	noteFilter := uuid.Nil
	for _, spec := range specs {
		if byNote, ok := spec.(specification.ByNoteID); ok {
			noteFilter = byNote.NoteID
		}
	}
	for _, m := range r.messages {
		if noteFilter == uuid.Nil || m.NoteId == noteFilter {
			copied := *m
			result = append(result, &copied)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeChatMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.messages)), nil
}

// --- Unit of work fakes ---

type fakeUnitOfWork struct {
	noteRepo *fakeNoteRepo
	chatRepo *fakeChatMessageRepo
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) NoteRepository() contract.NoteRepository {
	return u.noteRepo
}

func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return u.chatRepo
}

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func newFakeUowFactory() *fakeUowFactory {
	return &fakeUowFactory{
		uow: &fakeUnitOfWork{
			noteRepo: &fakeNoteRepo{},
			chatRepo: &fakeChatMessageRepo{},
		},
	}
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// --- Collaborator fakes ---

type fakeFileStore struct {
	url       string
	err       error
	saveCalls int
}

func (s *fakeFileStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	s.saveCalls++
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

type fakeLLMProvider struct {
	generateText  string
	generateErr   error
	extractText   string
	extractErr    error
	prompts       []string
	files         [][]llm.FileRef
	onGenerate    func() // invoked before Generate resolves
}

func (p *fakeLLMProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if p.onGenerate != nil {
		p.onGenerate()
	}
	if p.generateErr != nil {
		return "", p.generateErr
	}
	return p.generateText, nil
}

func (p *fakeLLMProvider) GenerateFromFiles(ctx context.Context, prompt string, files []llm.FileRef, options ...llm.Option) (string, error) {
	p.prompts = append(p.prompts, prompt)
	p.files = append(p.files, files)
	if p.extractErr != nil {
		return "", p.extractErr
	}
	return p.extractText, nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error {
	return nil
}

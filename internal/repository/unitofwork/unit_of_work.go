package unitofwork

import (
	"context"

	"notechat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NoteRepository() contract.NoteRepository
	ChatMessageRepository() contract.ChatMessageRepository
}

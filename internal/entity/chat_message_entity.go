package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	NoteId        uuid.UUID `gorm:"type:uuid;index"`
	Message       string
	IsUserMessage bool
	CreatedAt     time.Time
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NoteId        uuid.UUID `gorm:"type:uuid;not null;index"`
	Message       string    `gorm:"type:text;not null"`
	IsUserMessage bool      `gorm:"not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

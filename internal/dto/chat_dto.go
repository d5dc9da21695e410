package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatMessageResponse represents both persisted and unpersisted messages.
// Id is nil when the message was shown to the user but never stored
// (failed persistence of a user message, or the fixed fallback reply).
type ChatMessageResponse struct {
	Id            *uuid.UUID `json:"id,omitempty"`
	NoteId        uuid.UUID  `json:"note_id"`
	Message       string     `json:"message"`
	IsUserMessage bool       `json:"is_user_message"`
	CreatedAt     time.Time  `json:"created_at"`
}

type SendChatResponse struct {
	UserMessage ChatMessageResponse `json:"user_message"`
	Reply       ChatMessageResponse `json:"reply"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type NoteResponse struct {
	Id               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	OriginalFileURL  string     `json:"original_file_url"`
	FileType         string     `json:"file_type"`
	ExtractedText    *string    `json:"extracted_text,omitempty"`
	ProcessingStatus string     `json:"processing_status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

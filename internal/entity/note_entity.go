package entity

import (
	"time"

	"github.com/google/uuid"
)

type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypePdf   FileType = "pdf"
)

type ProcessingStatus string

const (
	// ProcessingStatusPending is declared for API compatibility but is never
	// produced by the upload flow: a note row only exists after the upload
	// succeeded, at which point it is already processing.
	ProcessingStatusPending    ProcessingStatus = "pending"
	ProcessingStatusProcessing ProcessingStatus = "processing"
	ProcessingStatusCompleted  ProcessingStatus = "completed"
	ProcessingStatusFailed     ProcessingStatus = "failed"
)

// IsTerminal reports whether the status may not transition again.
func (s ProcessingStatus) IsTerminal() bool {
	return s == ProcessingStatusCompleted || s == ProcessingStatusFailed
}

type Note struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title            string
	OriginalFileURL  string
	FileType         FileType
	ExtractedText    *string
	ProcessingStatus ProcessingStatus
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// Ready reports whether the note can back a chat conversation.
func (n *Note) Ready() bool {
	return n.ProcessingStatus == ProcessingStatusCompleted && n.ExtractedText != nil
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title            string    `gorm:"type:varchar(255);not null"`
	OriginalFileURL  string    `gorm:"type:text;not null"`
	FileType         string    `gorm:"type:varchar(10);not null"`
	ExtractedText    *string   `gorm:"type:text"`
	ProcessingStatus string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt        time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}

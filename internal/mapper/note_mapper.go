package mapper

import (
	"time"

	"notechat-be/internal/entity"
	"notechat-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	return &entity.Note{
		Id:               n.Id,
		Title:            n.Title,
		OriginalFileURL:  n.OriginalFileURL,
		FileType:         entity.FileType(n.FileType),
		ExtractedText:    n.ExtractedText,
		ProcessingStatus: entity.ProcessingStatus(n.ProcessingStatus),
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	return &model.Note{
		Id:               n.Id,
		Title:            n.Title,
		OriginalFileURL:  n.OriginalFileURL,
		FileType:         string(n.FileType),
		ExtractedText:    n.ExtractedText,
		ProcessingStatus: string(n.ProcessingStatus),
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

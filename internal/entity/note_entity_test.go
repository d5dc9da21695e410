package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessingStatusIsTerminal(t *testing.T) {
	assert.False(t, ProcessingStatusPending.IsTerminal())
	assert.False(t, ProcessingStatusProcessing.IsTerminal())
	assert.True(t, ProcessingStatusCompleted.IsTerminal())
	assert.True(t, ProcessingStatusFailed.IsTerminal())
}

func TestNoteReady(t *testing.T) {
	text := "Buy milk"

	tests := []struct {
		name string
		note Note
		want bool
	}{
		{
			name: "completed with text",
			note: Note{ProcessingStatus: ProcessingStatusCompleted, ExtractedText: &text},
			want: true,
		},
		{
			name: "completed without text",
			note: Note{ProcessingStatus: ProcessingStatusCompleted},
			want: false,
		},
		{
			name: "still processing",
			note: Note{ProcessingStatus: ProcessingStatusProcessing},
			want: false,
		},
		{
			name: "failed",
			note: Note{ProcessingStatus: ProcessingStatusFailed},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.note.Ready())
		})
	}
}

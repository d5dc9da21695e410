package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// FileStore persists an uploaded binary and returns a durable reference URL.
type FileStore interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// StorageKey builds a date-partitioned object key so uploads never collide.
func StorageKey(filename string) string {
	d := time.Now()
	return fmt.Sprintf("notes/%d/%02d/%02d/%s-%s", d.Year(), d.Month(), d.Day(), uuid.New(), filename)
}

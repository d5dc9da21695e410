package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes uploads under a directory served as static files
// (the server mounts it at /uploads).
type LocalStore struct {
	Dir     string
	BaseURL string
}

var _ FileStore = &LocalStore{}

func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{
		Dir:     dir,
		BaseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *LocalStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	key := StorageKey(filename)

	path := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return s.BaseURL + "/uploads/" + key, nil
}

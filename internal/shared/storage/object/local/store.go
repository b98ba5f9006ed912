package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"readiness-backend/internal/shared/storage/object"
)

// Store implements ObjectStore using the local filesystem.
type Store struct {
	baseDir string
}

// New creates a new local object store rooted at baseDir.
func New(baseDir string) object.ObjectStore {
	return &Store{baseDir: baseDir}
}

// Put writes the reader to disk at the given key.
func (s *Store) Put(ctx context.Context, key string, contentType string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	clean, err := cleanKey(key)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.baseDir, clean)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	_ = contentType
	return nil
}

// Open opens a stored object for reading.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, clean))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func cleanKey(key string) (string, error) {
	clean := filepath.Clean(key)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key")
	}
	return clean, nil
}

var _ object.ObjectStore = (*Store)(nil)

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore writes blobs to a directory on disk, served under a base URL.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates the store, ensuring the directory exists.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: baseURL}, nil
}

// Put stores the payload under a collision-free name derived from the
// original filename.
func (s *LocalStore) Put(ctx context.Context, name, contentType string, r io.Reader) (*Object, error) {
	pathname := fmt.Sprintf("%s-%s", uuid.New().String(), filepath.Base(name))
	destPath := filepath.Join(s.dir, pathname)

	dst, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(destPath) // cleanup on error
		return nil, fmt.Errorf("failed to write blob: %w", err)
	}

	return &Object{
		URL:         s.baseURL + "/" + pathname,
		Pathname:    pathname,
		ContentType: contentType,
	}, nil
}

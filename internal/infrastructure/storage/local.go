package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStorage stores uploaded files on the local filesystem under a
// bucket-named directory. Returned locations are bucket-relative keys,
// the same shape a remote object store would hand back.
type LocalStorage struct {
	root   string
	bucket string
}

// NewLocalStorage creates the bucket directory if needed.
func NewLocalStorage(root, bucket string) (*LocalStorage, error) {
	dir := filepath.Join(root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{root: root, bucket: bucket}, nil
}

// Upload writes the object under a collision-free key and returns its
// location.
func (s *LocalStorage) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := uuid.NewString() + "_" + filepath.Base(filename)
	path := filepath.Join(s.root, s.bucket, key)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create object file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	return s.bucket + "/" + key, nil
}

package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/localite/user-service/internal/domain"
	"github.com/localite/user-service/internal/reliability/circuitbreaker"
)

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
}

// FileService uploads profile pictures to object storage. Uploads are
// best-effort: a disallowed extension or a storage failure yields no
// location and the caller proceeds without one. The breaker skips the
// storage call entirely while the backend is failing.
type FileService struct {
	storage domain.ObjectStorage
	breaker *circuitbreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewFileService creates a new file service.
func NewFileService(storage domain.ObjectStorage, breaker *circuitbreaker.CircuitBreaker, logger *slog.Logger) *FileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileService{storage: storage, breaker: breaker, logger: logger}
}

// UploadProfilePic stores the file and returns its location, or nil
// when the file is not an allowed image type or the upload fails.
func (s *FileService) UploadProfilePic(ctx context.Context, filename, contentType string, r io.Reader) *string {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		s.logger.Info("rejected profile picture extension", slog.String("filename", filename))
		return nil
	}

	location, err := s.breaker.Execute(func() (string, error) {
		return s.storage.Upload(ctx, filename, contentType, r)
	})
	if err != nil {
		s.logger.Error("profile picture upload failed",
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
		return nil
	}

	return &location
}

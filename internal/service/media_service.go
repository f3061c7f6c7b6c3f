package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/litrevu/litrevu/internal/config"
	apperrors "github.com/litrevu/litrevu/pkg/util/errorutil"
)

// MediaService stores uploaded images on local disk and hands back stable
// keys usable as ticket image or profile photo references.
type MediaService struct {
	dir      string
	maxBytes int64
	logger   *zap.Logger
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// NewMediaService ensures the storage directory exists.
func NewMediaService(cfg config.MediaConfig, logger *zap.Logger) (*MediaService, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &MediaService{dir: cfg.Dir, maxBytes: cfg.MaxUploadBytes, logger: logger}, nil
}

// Store writes the uploaded file under a generated key and returns the key.
// prefix groups files by purpose ("tickets", "profile_photos").
func (s *MediaService) Store(prefix, filename string, size int64, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExts[ext] {
		return "", apperrors.NewValidationError("unsupported image type", map[string]any{"image": ext})
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return "", apperrors.NewValidationError("image too large", map[string]any{"max_bytes": s.maxBytes})
	}

	key := prefix + "/" + uuid.NewString() + ext
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// Read one byte past the cap so an understated size declaration is
	// rejected rather than silently truncated.
	limit := r
	if s.maxBytes > 0 {
		limit = io.LimitReader(r, s.maxBytes+1)
	}
	written, err := io.Copy(dst, limit)
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}
	if s.maxBytes > 0 && written > s.maxBytes {
		_ = os.Remove(path)
		return "", apperrors.NewValidationError("image too large", map[string]any{"max_bytes": s.maxBytes})
	}

	s.logger.Debug("stored media object", zap.String("key", key))
	return key, nil
}

// Remove deletes a stored object; a missing object is not an error.
func (s *MediaService) Remove(key string) error {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the storage root, used for static serving.
func (s *MediaService) Dir() string {
	return s.dir
}

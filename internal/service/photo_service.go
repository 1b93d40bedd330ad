package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"skillswap/internal/config"
	"skillswap/internal/models"
	"skillswap/internal/repository"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultPhotoUploadDir = "/tmp/skillswap/uploads"
	DefaultMaxUploadMB    = 5
)

// UploadPhotoInput carries an uploaded profile photo.
type UploadPhotoInput struct {
	UserID      uint
	Filename    string
	ContentType string
	Content     []byte
}

// PhotoService stores and serves profile photos on local disk.
type PhotoService struct {
	userRepo           repository.UserRepository
	uploadDir          string
	maxUploadSizeBytes int64
}

// NewPhotoService returns a new PhotoService.
func NewPhotoService(userRepo repository.UserRepository, cfg *config.Config) *PhotoService {
	uploadDir := DefaultPhotoUploadDir
	maxUploadMB := DefaultMaxUploadMB

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.MaxUploadMB > 0 {
			maxUploadMB = cfg.MaxUploadMB
		}
	}

	return &PhotoService{
		userRepo:           userRepo,
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadMB) * 1024 * 1024,
	}
}

// Upload validates and stores a new profile photo, replacing any previous
// one. The stored filename is generated server-side so user input never
// reaches the filesystem.
func (s *PhotoService) Upload(ctx context.Context, in UploadPhotoInput) (*models.User, error) {
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedPhotoMIME(detectedType) {
		return nil, models.NewValidationError("Profile photo must be a JPEG, PNG, GIF or WebP image")
	}

	// Decode fully so a renamed non-image cannot slip through.
	if _, _, err := image.Decode(bytes.NewReader(in.Content)); err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, models.NewInternalError(err)
	}

	filename := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.NewString(), extensionForMIME(detectedType))
	path := filepath.Join(s.uploadDir, filename)
	if err := os.WriteFile(path, in.Content, 0o644); err != nil {
		return nil, models.NewInternalError(err)
	}

	old := user.ProfilePhoto
	user.ProfilePhoto = filename
	if err := s.userRepo.Update(ctx, user); err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	s.removeStored(ctx, old)
	return user, nil
}

// Delete removes the user's profile photo from disk and clears the field.
func (s *PhotoService) Delete(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ProfilePhoto == "" {
		return nil, models.NewValidationError("No profile photo to delete")
	}

	old := user.ProfilePhoto
	user.ProfilePhoto = ""
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.removeStored(ctx, old)
	return user, nil
}

// Resolve maps a stored filename to its on-disk path, refusing anything
// that would escape the upload directory.
func (s *PhotoService) Resolve(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", models.NewValidationError("Invalid filename")
	}

	path := filepath.Join(s.uploadDir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", models.NewNotFoundError("Photo", filename)
	}
	return path, nil
}

func (s *PhotoService) removeStored(ctx context.Context, filename string) {
	if filename == "" || filename != filepath.Base(filename) {
		return
	}
	if err := os.Remove(filepath.Join(s.uploadDir, filename)); err != nil && !os.IsNotExist(err) {
		slog.WarnContext(ctx, "failed to remove old profile photo", "filename", filename, "err", err)
	}
}

func isAllowedPhotoMIME(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}

func extensionForMIME(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ".bin"
}

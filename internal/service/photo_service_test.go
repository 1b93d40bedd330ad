package service

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"skillswap/internal/config"
	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG.
const tinyPNGBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(tinyPNGBase64)
	require.NoError(t, err)
	return data
}

func photoTestService(t *testing.T, user *models.User) (*PhotoService, *string) {
	t.Helper()
	dir := t.TempDir()

	var savedPhoto string
	repo := &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			if id != user.ID {
				return nil, models.NewNotFoundError("User", id)
			}
			copied := *user
			copied.ProfilePhoto = savedPhoto
			if savedPhoto == "" {
				copied.ProfilePhoto = user.ProfilePhoto
			}
			return &copied, nil
		},
		updateFn: func(_ context.Context, u *models.User) error {
			savedPhoto = u.ProfilePhoto
			return nil
		},
	}

	cfg := &config.Config{UploadDir: dir, MaxUploadMB: 1}
	return NewPhotoService(repo, cfg), &savedPhoto
}

func TestPhotoService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a valid PNG with a generated filename", func(t *testing.T) {
		svc, saved := photoTestService(t, normalUser(1))

		user, err := svc.Upload(ctx, UploadPhotoInput{
			UserID: 1, Filename: "../../etc/passwd.png", Content: tinyPNG(t),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, user.ProfilePhoto)
		assert.NotContains(t, user.ProfilePhoto, "..")
		assert.Equal(t, filepath.Base(user.ProfilePhoto), user.ProfilePhoto)
		assert.Equal(t, *saved, user.ProfilePhoto)

		path, err := svc.Resolve(user.ProfilePhoto)
		require.NoError(t, err)
		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("rejects non-image content", func(t *testing.T) {
		svc, _ := photoTestService(t, normalUser(1))

		_, err := svc.Upload(ctx, UploadPhotoInput{UserID: 1, Content: []byte("definitely not an image")})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("rejects empty upload", func(t *testing.T) {
		svc, _ := photoTestService(t, normalUser(1))

		_, err := svc.Upload(ctx, UploadPhotoInput{UserID: 1})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("replacing removes the old file", func(t *testing.T) {
		svc, _ := photoTestService(t, normalUser(1))

		first, err := svc.Upload(ctx, UploadPhotoInput{UserID: 1, Content: tinyPNG(t)})
		require.NoError(t, err)
		firstPath, err := svc.Resolve(first.ProfilePhoto)
		require.NoError(t, err)

		second, err := svc.Upload(ctx, UploadPhotoInput{UserID: 1, Content: tinyPNG(t)})
		require.NoError(t, err)
		assert.NotEqual(t, first.ProfilePhoto, second.ProfilePhoto)

		_, err = os.Stat(firstPath)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestPhotoService_Resolve(t *testing.T) {
	svc, _ := photoTestService(t, normalUser(1))

	for _, name := range []string{"", "../secret", "a/b.png", ".hidden"} {
		_, err := svc.Resolve(name)
		assert.Error(t, err, "name %q must not resolve", name)
	}
}

func TestPhotoService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("no photo to delete", func(t *testing.T) {
		svc, _ := photoTestService(t, normalUser(1))

		_, err := svc.Delete(ctx, 1)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("removes file and clears the field", func(t *testing.T) {
		svc, saved := photoTestService(t, normalUser(1))

		uploaded, err := svc.Upload(ctx, UploadPhotoInput{UserID: 1, Content: tinyPNG(t)})
		require.NoError(t, err)
		path, err := svc.Resolve(uploaded.ProfilePhoto)
		require.NoError(t, err)

		user, err := svc.Delete(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, user.ProfilePhoto)
		assert.Empty(t, *saved)

		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})
}

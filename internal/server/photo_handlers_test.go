package server

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
const tinyPNGBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func uploadPhotoRequest(t *testing.T, token string) *http.Request {
	t.Helper()

	data, err := base64.StdEncoding.DecodeString(tinyPNGBase64)
	require.NoError(t, err)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("photo", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/users/me/photo", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestPhotoUpload(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)

	user := createUser(t, s, "sana")
	token := tokenFor(t, s, user.ID)

	var photoName string

	t.Run("upload sets profile photo", func(t *testing.T) {
		resp, err := app.Test(uploadPhotoRequest(t, token), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body models.User
		decodeBody(t, resp, &body)
		require.NotEmpty(t, body.ProfilePhoto)
		photoName = body.ProfilePhoto
	})

	t.Run("photo is served", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/uploads/"+photoName, "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unknown photo is 404", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/uploads/nope.png", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing file is rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/users/me/photo", token, map[string]any{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("non-image payload is rejected", func(t *testing.T) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("photo", "notes.txt")
		require.NoError(t, err)
		_, err = part.Write([]byte("just text"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/users/me/photo", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)

		resp, testErr := app.Test(req, -1)
		require.NoError(t, testErr)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("delete removes photo", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, "/api/users/me/photo", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body models.User
		decodeBody(t, resp, &body)
		assert.Empty(t, body.ProfilePhoto)

		resp = doJSON(t, app, http.MethodDelete, "/api/users/me/photo", token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

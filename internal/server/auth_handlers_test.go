package server

import (
	"net/http"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Parallel()
	_, app := newTestServer(t)

	t.Run("creates account and returns token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
			"name":     "Alice",
			"email":    "alice@example.com",
			"password": testPassword,
			"location": "Lisbon",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "Alice", body.User.Name)
		assert.Equal(t, "alice@example.com", body.User.Email)
		assert.True(t, body.User.IsPublic)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
			"name":     "Alice Again",
			"email":    "ALICE@example.com",
			"password": testPassword,
		})
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		var body models.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "CONFLICT", body.Code)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
			"name":     "Bob",
			"email":    "bob@example.com",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
			"email": "nobody@example.com",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)

	user := createUser(t, s, "carol")
	banned := createUser(t, s, "dave", asBanned())

	t.Run("valid credentials", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    user.Email,
			"password": testPassword,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, user.ID, body.User.ID)
		assert.NotNil(t, body.User.LastLogin)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    user.Email,
			"password": "WrongPass1",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown email", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "ghost@example.com",
			"password": testPassword,
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("banned account refused", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    banned.Email,
			"password": testPassword,
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestMe(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)

	user := createUser(t, s, "erin")
	token := tokenFor(t, s, user.ID)

	t.Run("returns current user", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/auth/me", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body models.User
		decodeBody(t, resp, &body)
		assert.Equal(t, user.ID, body.ID)
		assert.Equal(t, "erin", body.Name)
	})

	t.Run("rejects missing token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/auth/me", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

package server

import (
	"fmt"
	"net/http"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createNotification(t *testing.T, s *Server, userID uint, title string) *models.Notification {
	t.Helper()

	n := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: "details for " + title,
		Type:    models.NotificationInfo,
	}
	require.NoError(t, s.db.Create(n).Error)
	return n
}

func TestNotificationFeed(t *testing.T) {
	s, app := newTestServer(t)

	user := createUser(t, s, "nina")
	other := createUser(t, s, "oscar")
	userToken := tokenFor(t, s, user.ID)
	otherToken := tokenFor(t, s, other.ID)

	first := createNotification(t, s, user.ID, "First")
	second := createNotification(t, s, user.ID, "Second")
	createNotification(t, s, other.ID, "Not Yours")

	t.Run("unread count reflects feed", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/notifications/unread-count", userToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Count int64 `json:"count"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, int64(2), body.Count)
	})

	t.Run("mark read moves notification behind unread ones", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/notifications/%d/read", second.ID), userToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doJSON(t, app, http.MethodGet, "/api/notifications", userToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Notifications []models.Notification `json:"notifications"`
			Total         int64                 `json:"total"`
		}
		decodeBody(t, resp, &body)
		require.Len(t, body.Notifications, 2)
		assert.Equal(t, int64(2), body.Total)
		assert.Equal(t, first.ID, body.Notifications[0].ID)
		assert.False(t, body.Notifications[0].IsRead)
		assert.Equal(t, second.ID, body.Notifications[1].ID)
		assert.True(t, body.Notifications[1].IsRead)
	})

	t.Run("unread_only filters out read notifications", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/notifications?unread_only=true", userToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Notifications []models.Notification `json:"notifications"`
			Total         int64                 `json:"total"`
		}
		decodeBody(t, resp, &body)
		require.Len(t, body.Notifications, 1)
		assert.Equal(t, first.ID, body.Notifications[0].ID)
	})

	t.Run("cannot touch another user's notification", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/notifications/%d/read", first.ID), otherToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/notifications/%d", first.ID), otherToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("read-all clears the badge", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/notifications/read-all", userToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doJSON(t, app, http.MethodGet, "/api/notifications/unread-count", userToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Count int64 `json:"count"`
		}
		decodeBody(t, resp, &body)
		assert.Zero(t, body.Count)
	})

	t.Run("delete removes from feed", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/notifications/%d", second.ID), userToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doJSON(t, app, http.MethodGet, "/api/notifications", userToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Total int64 `json:"total"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, int64(1), body.Total)
	})
}

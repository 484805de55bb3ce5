package users

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandler_AddUser(t *testing.T) {
	svc := NewService(setupTestDB(t), zap.NewNop())
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)

	body := []byte(`{"user_id": 100, "username": "alice", "is_owner": true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]any
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, true, result["applied"])

	// Second add reports applied false.
	req = httptest.NewRequest(http.MethodPost, "/api/users/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	raw, _ = io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, false, result["applied"])
}

func TestHandler_AddUserMissingID(t *testing.T) {
	svc := NewService(setupTestDB(t), zap.NewNop())
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)

	req := httptest.NewRequest(http.MethodPost, "/api/users/", bytes.NewReader([]byte(`{"username": "ghost"}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_ListUsers(t *testing.T) {
	svc := NewService(setupTestDB(t), zap.NewNop())
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)

	_, err := svc.Add(context.Background(), 100, "alice", false)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Status string        `json:"status"`
		Users  []AllowedUser `json:"users"`
	}
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, "ok", result.Status)
	require.Len(t, result.Users, 1)
	assert.Equal(t, "alice", result.Users[0].Username)
}

func TestHandler_RemoveUser(t *testing.T) {
	svc := NewService(setupTestDB(t), zap.NewNop())
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)

	_, err := svc.Add(context.Background(), 100, "alice", false)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/users/100", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]any
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, true, result["applied"])

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/users/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

package messages

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	feature := NewFeature(setupTestDB(t), zap.NewNop(), Config{DuplicateWindowSeconds: 3600}, nil)
	require.NoError(t, feature.Load(app))
	return app
}

func TestHandleIngest(t *testing.T) {
	app := setupTestApp(t)

	post := func(body map[string]any) (*map[string]any, int) {
		raw, _ := json.Marshal(body)
		req := httptest.NewRequest("POST", "/api/messages", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		var out map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&out)
		return &out, resp.StatusCode
	}

	t.Run("FirstSeen", func(t *testing.T) {
		out, code := post(map[string]any{"chat_id": -5, "message_id": 1, "message_text": "hello"})
		assert.Equal(t, 200, code)
		assert.Equal(t, false, (*out)["duplicate"])
	})

	t.Run("Duplicate", func(t *testing.T) {
		out, code := post(map[string]any{"chat_id": -5, "message_id": 2, "message_text": "hello"})
		assert.Equal(t, 200, code)
		assert.Equal(t, true, (*out)["duplicate"])
		assert.EqualValues(t, 1, (*out)["first_seen_message_id"])
	})

	t.Run("MissingIDs", func(t *testing.T) {
		_, code := post(map[string]any{"message_text": "hello"})
		assert.Equal(t, 400, code)
	})

	t.Run("EmptyText", func(t *testing.T) {
		_, code := post(map[string]any{"chat_id": -5, "message_id": 3, "message_text": "  "})
		assert.Equal(t, 400, code)
	})
}

func TestHandleStats(t *testing.T) {
	app := setupTestApp(t)

	raw, _ := json.Marshal(map[string]any{"chat_id": 1, "message_id": 1, "message_text": "a"})
	req := httptest.NewRequest("POST", "/api/messages", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/messages/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.EqualValues(t, 1, out["total"])
	assert.EqualValues(t, 0, out["duplicates"])
}

func TestLoader(t *testing.T) {
	feature := NewFeature(setupTestDB(t), zap.NewNop(), Config{}, nil)

	assert.Equal(t, "messages", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NotNil(t, feature.Service())
}

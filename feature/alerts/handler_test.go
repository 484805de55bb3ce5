package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *Service) {
	t.Helper()
	app := fiber.New()
	svc := NewService(setupTestDB(t), zap.NewNop(), nil)
	NewHandler(svc).RegisterRoutes(app)
	return app, svc
}

func TestHandleCreateAlert(t *testing.T) {
	app, _ := setupTestApp(t)

	t.Run("OK", func(t *testing.T) {
		body := map[string]any{
			"chat_id":      -100200,
			"message_id":   55,
			"message_text": "duplicate text",
			"message_hash": "abc",
			"monitor_info": map[string]any{"sender": "bob"},
		}
		raw, _ := json.Marshal(body)
		req := httptest.NewRequest("POST", "/api/alerts", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var out map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "ok", out["status"])
		assert.EqualValues(t, 1, out["id"])
	})

	t.Run("InvalidPayload", func(t *testing.T) {
		raw, _ := json.Marshal(map[string]any{"message_text": "no ids"})
		req := httptest.NewRequest("POST", "/api/alerts", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestHandleListPending(t *testing.T) {
	app, svc := setupTestApp(t)

	_, err := svc.Add(context.Background(), AddInput{ChatID: 1, MessageID: 2, MessageText: "x"})
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/alerts", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out struct {
		Status string  `json:"status"`
		Alerts []Alert `json:"alerts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ok", out.Status)
	require.Len(t, out.Alerts, 1)
	assert.Equal(t, StatusPending, out.Alerts[0].Status)
}

func TestHandlePostReply(t *testing.T) {
	app, svc := setupTestApp(t)

	alert, err := svc.Add(context.Background(), AddInput{ChatID: 1, MessageID: 2})
	require.NoError(t, err)

	t.Run("EmptyReply", func(t *testing.T) {
		raw, _ := json.Marshal(map[string]any{"alert_id": alert.ID, "reply_text": ""})
		req := httptest.NewRequest("POST", "/api/replies", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Applied", func(t *testing.T) {
		raw, _ := json.Marshal(map[string]any{"alert_id": alert.ID, "reply_text": "handled"})
		req := httptest.NewRequest("POST", "/api/replies", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var out map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, true, out["applied"])
	})

	t.Run("NotAppliedTwice", func(t *testing.T) {
		raw, _ := json.Marshal(map[string]any{"alert_id": alert.ID, "reply_text": "again"})
		req := httptest.NewRequest("POST", "/api/replies", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, false, out["applied"])
	})
}

func TestHandleMarkDelivered(t *testing.T) {
	app, svc := setupTestApp(t)

	alert, err := svc.Add(context.Background(), AddInput{ChatID: 1, MessageID: 2})
	require.NoError(t, err)
	_, err = svc.MarkReplied(context.Background(), alert.ID, "done")
	require.NoError(t, err)

	t.Run("InvalidID", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/api/alerts/abc/delivered", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Applied", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/api/alerts/1/delivered", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var out map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, true, out["applied"])
	})
}

func TestLoader(t *testing.T) {
	feature := NewFeature(setupTestDB(t), zap.NewNop(), nil)

	assert.Equal(t, "alerts", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NotNil(t, feature.Service())

	app := fiber.New()
	assert.NoError(t, feature.Load(app))
}

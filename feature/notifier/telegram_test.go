package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Send(t *testing.T) {
	var got sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/sendMessage", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(sendMessageResponse{OK: true})
	}))
	defer srv.Close()

	client := NewClient(Config{Token: "test-token", ApiURL: srv.URL})
	err := client.Send(context.Background(), 100, "hello")
	require.NoError(t, err)

	assert.Equal(t, int64(100), got.ChatID)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, "MarkdownV2", got.ParseMode)
}

func TestClient_SendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(sendMessageResponse{OK: false, Description: "chat not found"})
	}))
	defer srv.Close()

	client := NewClient(Config{Token: "test-token", ApiURL: srv.URL})
	err := client.Send(context.Background(), 100, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestClient_SendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewClient(Config{Token: "test-token", ApiURL: srv.URL})
	err := client.Send(context.Background(), 100, "hello")
	assert.Error(t, err)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client := NewClient(Config{Token: "t", ApiURL: "https://api.telegram.org/"})
	assert.Equal(t, "https://api.telegram.org", client.apiURL)
}

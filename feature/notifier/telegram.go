package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Sender delivers a notification to a chat.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Client sends messages through the Telegram Bot API.
type Client struct {
	apiURL string
	token  string
	client *http.Client
}

// NewClient creates a Bot API client from the notifier config.
func NewClient(cfg Config) *Client {
	return &Client{
		apiURL: strings.TrimRight(cfg.ApiURL, "/"),
		token:  cfg.Token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send posts a MarkdownV2 message to the given chat.
func (c *Client) Send(ctx context.Context, chatID int64, text string) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "MarkdownV2",
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.apiURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call bot api: %w", err)
	}
	defer resp.Body.Close()

	var result sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode bot api response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("bot api rejected message: %s", result.Description)
	}
	return nil
}

package messages

import (
	"errors"

	"duplicate-monitor/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for message ingestion.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the message routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/messages")
	group.Post("/", h.HandleIngest)
	group.Get("/stats", h.HandleStats)
}

type ingestRequest struct {
	ChatID      *int64 `json:"chat_id"`
	MessageID   *int64 `json:"message_id"`
	SenderID    int64  `json:"sender_id"`
	SenderName  string `json:"sender_name"`
	MessageText string `json:"message_text"`
}

// HandleIngest records an observed message and returns the duplicate verdict.
// @Summary Ingest Message
// @Description Records a monitored chat message and reports whether it duplicates an earlier one.
// @Tags messages
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Duplicate verdict"
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/messages [post]
func (h *Handler) HandleIngest(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ingestRequest
	if err := c.BodyParser(&req); err != nil || req.ChatID == nil || req.MessageID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	verdict, err := h.service.Ingest(c.Context(), IngestInput{
		ChatID:      *req.ChatID,
		MessageID:   *req.MessageID,
		SenderID:    req.SenderID,
		SenderName:  req.SenderName,
		MessageText: req.MessageText,
	})
	if err != nil {
		if errors.Is(err, ErrEmptyMessage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "empty message"})
		}
		l.Error("Failed to ingest message", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal"})
	}

	resp := fiber.Map{"status": "ok", "duplicate": verdict.IsDuplicate}
	if verdict.FirstSeenMessageID != nil {
		resp["first_seen_message_id"] = *verdict.FirstSeenMessageID
	}
	return c.JSON(resp)
}

// HandleStats returns counters over the message store.
// @Summary Message Stats
// @Tags messages
// @Produce json
// @Success 200 {object} map[string]interface{} "Counters"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/messages/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	stats, err := h.service.Stats(c.Context())
	if err != nil {
		l.Error("Failed to compute stats", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal"})
	}
	return c.JSON(fiber.Map{
		"status":     "ok",
		"total":      stats.Total,
		"duplicates": stats.Duplicates,
		"chats":      stats.Chats,
	})
}

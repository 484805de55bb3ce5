package alerts

import (
	"duplicate-monitor/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the alert broker API.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the alert broker routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api")
	group.Post("/alerts", h.HandleCreateAlert)
	group.Get("/alerts", h.HandleListPending)
	group.Post("/replies", h.HandlePostReply)
	group.Get("/replied_alerts", h.HandleListReplied)
	group.Post("/alerts/:id/delivered", h.HandleMarkDelivered)
}

type createAlertRequest struct {
	AlertUUID   string         `json:"alert_uuid"`
	ChatID      *int64         `json:"chat_id"`
	MessageID   *int64         `json:"message_id"`
	MessageText string         `json:"message_text"`
	MessageHash string         `json:"message_hash"`
	MonitorInfo map[string]any `json:"monitor_info"`
}

// HandleCreateAlert creates a pending alert (monitor -> broker).
// @Summary Create Alert
// @Description Creates a pending alert for a detected duplicate message.
// @Tags alerts
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Created alert id"
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/alerts [post]
func (h *Handler) HandleCreateAlert(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req createAlertRequest
	if err := c.BodyParser(&req); err != nil || req.ChatID == nil || req.MessageID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	alert, err := h.service.Add(c.Context(), AddInput{
		AlertUUID:   req.AlertUUID,
		ChatID:      *req.ChatID,
		MessageID:   *req.MessageID,
		MessageText: req.MessageText,
		MessageHash: req.MessageHash,
		MonitorInfo: req.MonitorInfo,
	})
	if err != nil {
		l.Error("Failed to create alert", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal"})
	}

	l.Info("Alert created", zap.Uint("alert_id", alert.ID), zap.Int64("chat_id", alert.ChatID))
	return c.JSON(fiber.Map{"status": "ok", "id": alert.ID})
}

// HandleListPending lists pending alerts (notifier polls).
// @Summary List Pending Alerts
// @Tags alerts
// @Produce json
// @Success 200 {object} map[string]interface{} "Pending alerts"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/alerts [get]
func (h *Handler) HandleListPending(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	pending, err := h.service.Pending(c.Context(), 200)
	if err != nil {
		l.Error("Failed to list pending alerts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal"})
	}
	if pending == nil {
		pending = []Alert{}
	}
	return c.JSON(fiber.Map{"status": "ok", "alerts": pending})
}

type replyRequest struct {
	AlertID   *uint  `json:"alert_id"`
	ReplyText string `json:"reply_text"`
}

// HandlePostReply stores the operator's reply for an alert (notifier -> broker).
// @Summary Submit Reply
// @Tags alerts
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Applied flag"
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/replies [post]
func (h *Handler) HandlePostReply(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req replyRequest
	if err := c.BodyParser(&req); err != nil || req.AlertID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if req.ReplyText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "empty reply"})
	}

	applied, err := h.service.MarkReplied(c.Context(), *req.AlertID, req.ReplyText)
	if err != nil {
		l.Error("Failed to save reply", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal"})
	}
	return c.JSON(fiber.Map{"status": "ok", "applied": applied})
}

// HandleListReplied lists replied alerts (monitor polls to deliver replies).
// @Summary List Replied Alerts
// @Tags alerts
// @Produce json
// @Success 200 {object} map[string]interface{} "Replied alerts"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/replied_alerts [get]
func (h *Handler) HandleListReplied(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	replied, err := h.service.Replied(c.Context(), 200)
	if err != nil {
		l.Error("Failed to list replied alerts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal"})
	}
	if replied == nil {
		replied = []Alert{}
	}
	return c.JSON(fiber.Map{"status": "ok", "alerts": replied})
}

// HandleMarkDelivered marks a replied alert as delivered (monitor -> broker).
// @Summary Mark Alert Delivered
// @Tags alerts
// @Produce json
// @Success 200 {object} map[string]interface{} "Applied flag"
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/alerts/{id}/delivered [post]
func (h *Handler) HandleMarkDelivered(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	applied, err := h.service.MarkDelivered(c.Context(), uint(id))
	if err != nil {
		l.Error("Failed to mark alert delivered", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal"})
	}
	return c.JSON(fiber.Map{"status": "ok", "applied": applied})
}

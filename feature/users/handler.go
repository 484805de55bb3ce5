package users

import (
	"strconv"

	"duplicate-monitor/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the operator allow list.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the user routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/users")
	group.Post("/", h.HandleAddUser)
	group.Get("/", h.HandleListUsers)
	group.Delete("/:id", h.HandleRemoveUser)
}

type addUserRequest struct {
	UserID   *int64 `json:"user_id"`
	Username string `json:"username"`
	IsOwner  bool   `json:"is_owner"`
}

// HandleAddUser grants a user access.
// @Summary Add Allowed User
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Applied flag"
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/users [post]
func (h *Handler) HandleAddUser(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req addUserRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	applied, err := h.service.Add(c.Context(), *req.UserID, req.Username, req.IsOwner)
	if err != nil {
		l.Error("Failed to add user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal"})
	}
	return c.JSON(fiber.Map{"status": "ok", "applied": applied})
}

// HandleListUsers lists allowed users.
// @Summary List Allowed Users
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{} "Allowed users"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/users [get]
func (h *Handler) HandleListUsers(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	list, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Failed to list users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal"})
	}
	return c.JSON(fiber.Map{"status": "ok", "users": list})
}

// HandleRemoveUser revokes a user's access.
// @Summary Remove Allowed User
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{} "Applied flag"
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/users/{id} [delete]
func (h *Handler) HandleRemoveUser(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	applied, err := h.service.Remove(c.Context(), userID)
	if err != nil {
		l.Error("Failed to remove user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal"})
	}
	return c.JSON(fiber.Map{"status": "ok", "applied": applied})
}

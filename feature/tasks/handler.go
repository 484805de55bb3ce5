package tasks

import (
	"duplicate-monitor/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for monitor tasks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the task routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/tasks")
	group.Post("/", h.HandleAddTask)
	group.Get("/", h.HandleListActive)
	group.Delete("/:id", h.HandleRemoveTask)
}

type addTaskRequest struct {
	Label     string  `json:"label"`
	OwnerID   *int64  `json:"owner_id"`
	TargetIDs []int64 `json:"target_ids"`
}

// HandleAddTask creates a monitoring task.
// @Summary Add Monitor Task
// @Tags tasks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Created task id"
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/tasks [post]
func (h *Handler) HandleAddTask(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req addTaskRequest
	if err := c.BodyParser(&req); err != nil || req.OwnerID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	task, err := h.service.Add(c.Context(), req.Label, *req.OwnerID, req.TargetIDs)
	if err != nil {
		l.Error("Failed to add task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal"})
	}
	return c.JSON(fiber.Map{"status": "ok", "id": task.ID})
}

// HandleListActive lists active monitoring tasks.
// @Summary List Active Tasks
// @Tags tasks
// @Produce json
// @Success 200 {object} map[string]interface{} "Active tasks"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/tasks [get]
func (h *Handler) HandleListActive(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	views, err := h.service.Active(c.Context())
	if err != nil {
		l.Error("Failed to list tasks", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal"})
	}
	return c.JSON(fiber.Map{"status": "ok", "tasks": views})
}

// HandleRemoveTask deletes a monitoring task.
// @Summary Remove Task
// @Tags tasks
// @Produce json
// @Success 200 {object} map[string]interface{} "Applied flag"
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/tasks/{id} [delete]
func (h *Handler) HandleRemoveTask(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	applied, err := h.service.Remove(c.Context(), uint(id))
	if err != nil {
		l.Error("Failed to remove task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal"})
	}
	return c.JSON(fiber.Map{"status": "ok", "applied": applied})
}

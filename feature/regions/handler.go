package regions

import (
	"errors"

	"world-merger/core/logger"
	"world-merger/core/region"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for regions.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the regions routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/regions")
	group.Get("/plan", h.HandlePlan)
	group.Get("/history", h.HandleHistory)
	group.Get("/preview/:name", h.HandlePreview)
	group.Get("/:side/:name", h.HandleInspect)
}

// HandlePlan returns the copy and merge lists of the configured worlds.
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	plan, err := h.service.Plan(c.Context(), c.QueryBool("refresh"))
	if err != nil {
		return h.fail(c, "Plan failed", err)
	}
	return c.JSON(plan)
}

// HandleInspect returns the decoded header of one region file.
func (h *Handler) HandleInspect(c *fiber.Ctx) error {
	report, err := h.service.Inspect(c.Context(), c.Params("side"), c.Params("name"))
	if err != nil {
		return h.fail(c, "Inspect failed", err)
	}
	return c.JSON(report)
}

// HandlePreview reports what merging one region file would do.
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	preview, err := h.service.Preview(c.Context(), c.Params("name"), c.Query("rule"))
	if err != nil {
		return h.fail(c, "Preview failed", err)
	}
	return c.JSON(preview)
}

// HandleHistory lists recent merge runs.
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	runs, err := h.service.History(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return h.fail(c, "History failed", err)
	}
	return c.JSON(fiber.Map{"runs": runs})
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrInvalidSide), errors.Is(err, ErrInvalidRule):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, region.ErrFormat), errors.Is(err, region.ErrTruncatedPayload):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrJournalDisabled):
		status = fiber.StatusServiceUnavailable
	}

	l := logger.WithRequestID(h.service.logger, c)
	if status == fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Debug(msg, zap.Error(err), zap.Int("status", status))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

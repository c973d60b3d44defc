package shopify

import (
	"context"

	"shopsync/core/logger"
	"shopsync/feature/shopify/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Runner is the orchestrator surface the HTTP handler needs.
type Runner interface {
	Run(ctx context.Context, flavor models.SyncType) models.SyncSummary
	RecentRuns(ctx context.Context, limit int) ([]models.SyncRun, error)
}

// Handler exposes the sync control plane over HTTP.
type Handler struct {
	runner Runner
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(runner Runner, logger *zap.Logger) *Handler {
	return &Handler{runner: runner, logger: logger}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/full-inventory", h.HandleTriggerFullInventory)
	group.Post("/daily-inventory", h.HandleTriggerDailyInventory)
	group.Post("/price-update", h.HandleTriggerPriceUpdate)
	group.Get("/status", h.HandleStatus)
}

// HandleTriggerFullInventory enqueues a full inventory sync of all stores.
func (h *Handler) HandleTriggerFullInventory(c *fiber.Ctx) error {
	return h.trigger(c, models.SyncTypeFullInventory, "Full inventory sync started")
}

// HandleTriggerDailyInventory enqueues an incremental sync covering the
// previous UTC day. The window is fixed, not caller-parameterized.
func (h *Handler) HandleTriggerDailyInventory(c *fiber.Ctx) error {
	return h.trigger(c, models.SyncTypeIncrementalInventory, "Incremental sync started (previous day)")
}

// HandleTriggerPriceUpdate enqueues a price update sync.
func (h *Handler) HandleTriggerPriceUpdate(c *fiber.Ctx) error {
	return h.trigger(c, models.SyncTypePriceUpdate, "Price update started")
}

// trigger launches one orchestrator invocation in the background and
// reports an opaque job id. The run outlives the request, so it gets a
// fresh context rather than the request's.
func (h *Handler) trigger(c *fiber.Ctx, flavor models.SyncType, message string) error {
	jobID := uuid.NewString()
	l := logger.WithRayID(h.logger, c).With(
		zap.String("job_id", jobID),
		zap.String("sync_type", string(flavor)))

	go func() {
		summary := h.runner.Run(context.Background(), flavor)
		l.Info("Background sync run returned",
			zap.Uint64("run_id", summary.RunID),
			zap.String("status", string(summary.Status)))
	}()

	l.Info("Sync run enqueued")
	return c.JSON(fiber.Map{
		"success": true,
		"jobId":   jobID,
		"message": message,
	})
}

// HandleStatus returns the most recent run summaries.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	runs, err := h.runner.RecentRuns(c.Context(), 10)
	if err != nil {
		l.Error("Failed to list recent runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"runs":    runs,
	})
}

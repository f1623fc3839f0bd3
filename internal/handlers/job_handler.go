package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/AthleteEngineBack/internal/services"
)

type nightlyUpdater interface {
	RunNightlyUpdate(ctx context.Context, day time.Time) (services.BatchResult, error)
}

type JobHandler struct {
	monitor nightlyUpdater
}

func NewJobHandler(monitor *services.LoadMonitor) *JobHandler {
	return &JobHandler{monitor: monitor}
}

// TriggerLoadMonitor runs the nightly batch for today. Shares the code path
// used by the scheduler so a manual retry recomputes identical samples.
func (h *JobHandler) TriggerLoadMonitor(c *fiber.Ctx) error {
	result, err := h.monitor.RunNightlyUpdate(c.Context(), time.Now().UTC())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to run load monitor batch"})
	}

	return c.JSON(result)
}

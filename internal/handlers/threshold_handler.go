package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/AthleteEngineBack/internal/models"
	"github.com/saeid-a/AthleteEngineBack/internal/services"
)

type thresholdEstimator interface {
	Estimate(observations []models.TimeTrialObservation, recoveryHours float64) (*models.ThresholdEstimate, error)
}

type ThresholdHandler struct {
	estimator thresholdEstimator
}

func NewThresholdHandler(estimator *services.ThresholdEstimator) *ThresholdHandler {
	return &ThresholdHandler{estimator: estimator}
}

type thresholdEstimateRequest struct {
	Observations  []models.TimeTrialObservation `json:"observations"`
	RecoveryHours float64                       `json:"recovery_hours"`
}

func (h *ThresholdHandler) Estimate(c *fiber.Ctx) error {
	var req thresholdEstimateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	estimate, err := h.estimator.Estimate(req.Observations, req.RecoveryHours)
	if err != nil {
		return mapThresholdError(c, err)
	}

	return c.JSON(fiber.Map{"estimate": estimate})
}

func mapThresholdError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInsufficientObservations),
		errors.Is(err, services.ErrInvalidObservation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrDegenerateObservations):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to estimate threshold"})
	}
}

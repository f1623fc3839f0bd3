package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/AthleteEngineBack/internal/models"
	"github.com/saeid-a/AthleteEngineBack/internal/services"
)

type confidenceScorer interface {
	Score(action models.ProposedAction, snapshot models.PerceptionSnapshot, historicalAccuracy *float64) models.ConfidenceScore
	Explain(result models.ConfidenceScore) []string
}

type raceAdvisor interface {
	Recommend(race models.ProposedRace, status models.AthleteStatus, goal *models.GoalRace) models.RaceRecommendation
}

type DecisionHandler struct {
	scorer  confidenceScorer
	advisor raceAdvisor
}

func NewDecisionHandler(scorer *services.ConfidenceScorer, advisor *services.RaceAdvisor) *DecisionHandler {
	return &DecisionHandler{scorer: scorer, advisor: advisor}
}

type actionConfidenceRequest struct {
	Action             models.ProposedAction     `json:"action"`
	Snapshot           models.PerceptionSnapshot `json:"snapshot"`
	HistoricalAccuracy *float64                  `json:"historical_accuracy"`
}

func (h *DecisionHandler) ScoreActionConfidence(c *fiber.Ctx) error {
	var req actionConfidenceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if strings.TrimSpace(req.Action.Type) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "action.type is required"})
	}
	if req.Snapshot.CapturedAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "snapshot.captured_at is required"})
	}

	result := h.scorer.Score(req.Action, req.Snapshot, req.HistoricalAccuracy)

	return c.JSON(fiber.Map{
		"confidence":   result,
		"observations": h.scorer.Explain(result),
		"auto_apply":   result.Score >= services.AutoApplyThreshold,
		"supervised":   result.Score >= services.SupervisedThreshold,
	})
}

type raceRecommendationRequest struct {
	Race   raceRequest          `json:"race"`
	Status models.AthleteStatus `json:"status"`
	Goal   *raceRequest         `json:"goal_race"`
}

type raceRequest struct {
	Date       string                `json:"date"`
	Importance models.RaceImportance `json:"importance"`
}

func (h *DecisionHandler) RecommendRace(c *fiber.Ctx) error {
	var req raceRecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	raceDate, err := parseDate(req.Race.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "race.date must be a valid YYYY-MM-DD date"})
	}
	if !validImportance(req.Race.Importance) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "race.importance must be A, B or C"})
	}

	var goal *models.GoalRace
	if req.Goal != nil {
		goalDate, err := parseDate(req.Goal.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "goal_race.date must be a valid YYYY-MM-DD date"})
		}
		goal = &models.GoalRace{Date: goalDate, Importance: req.Goal.Importance}
	}

	recommendation := h.advisor.Recommend(models.ProposedRace{
		Date:       raceDate,
		Importance: req.Race.Importance,
	}, req.Status, goal)

	return c.JSON(fiber.Map{"recommendation": recommendation})
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(value))
}

func validImportance(importance models.RaceImportance) bool {
	switch importance {
	case models.ImportanceA, models.ImportanceB, models.ImportanceC:
		return true
	default:
		return false
	}
}

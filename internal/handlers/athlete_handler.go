package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/AthleteEngineBack/internal/models"
	"github.com/saeid-a/AthleteEngineBack/internal/repository"
)

type athleteStore interface {
	Create(ctx context.Context, athlete *models.Athlete) error
	GetByID(ctx context.Context, id int64) (*models.Athlete, error)
	SetActive(ctx context.Context, id int64, active bool) (*models.Athlete, error)
}

type sessionStore interface {
	Create(ctx context.Context, input repository.CreateTrainingSessionInput) (*models.TrainingSession, error)
	ListByAthlete(ctx context.Context, athleteID int64, limit int) ([]models.TrainingSession, error)
}

type sampleReader interface {
	Latest(ctx context.Context, athleteID int64) (*models.TrainingLoadSample, error)
	ListRange(ctx context.Context, athleteID int64, from, to time.Time) ([]models.TrainingLoadSample, error)
}

type AthleteHandler struct {
	athleteRepo athleteStore
	sessionRepo sessionStore
	sampleRepo  sampleReader
}

func NewAthleteHandler(
	athleteRepo *repository.AthleteRepository,
	sessionRepo *repository.TrainingSessionRepository,
	sampleRepo *repository.LoadSampleRepository,
) *AthleteHandler {
	return &AthleteHandler{
		athleteRepo: athleteRepo,
		sessionRepo: sessionRepo,
		sampleRepo:  sampleRepo,
	}
}

type createAthleteRequest struct {
	Name   string `json:"name"`
	Active *bool  `json:"active"`
}

func (h *AthleteHandler) CreateAthlete(c *fiber.Ctx) error {
	var req createAthleteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	athlete := models.Athlete{Name: strings.TrimSpace(req.Name), Active: true}
	if req.Active != nil {
		athlete.Active = *req.Active
	}

	if err := h.athleteRepo.Create(c.Context(), &athlete); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create athlete"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"athlete": athlete})
}

func (h *AthleteHandler) GetAthlete(c *fiber.Ctx) error {
	athleteID, err := parseAthleteID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid athlete id"})
	}

	athlete, err := h.athleteRepo.GetByID(c.Context(), athleteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Athlete not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load athlete"})
	}

	return c.JSON(fiber.Map{"athlete": athlete})
}

type logSessionRequest struct {
	SessionDate     string  `json:"session_date"`
	DurationMinutes int     `json:"duration_minutes"`
	Intensity       string  `json:"intensity"`
	Completed       *bool   `json:"completed"`
	Notes           *string `json:"notes"`
}

func (h *AthleteHandler) LogSession(c *fiber.Ctx) error {
	athleteID, err := parseAthleteID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid athlete id"})
	}

	var req logSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	sessionDate, err := parseDate(req.SessionDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "session_date must be a valid YYYY-MM-DD date"})
	}
	if req.DurationMinutes <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "duration_minutes must be greater than 0"})
	}

	if _, err := h.athleteRepo.GetByID(c.Context(), athleteID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Athlete not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load athlete"})
	}

	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	session, err := h.sessionRepo.Create(c.Context(), repository.CreateTrainingSessionInput{
		AthleteID:       athleteID,
		SessionDate:     sessionDate,
		DurationMinutes: req.DurationMinutes,
		Intensity:       strings.ToUpper(strings.TrimSpace(req.Intensity)),
		Completed:       completed,
		Notes:           req.Notes,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to log session"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": session})
}

type setActiveRequest struct {
	Active *bool `json:"active"`
}

func (h *AthleteHandler) SetAthleteActive(c *fiber.Ctx) error {
	athleteID, err := parseAthleteID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid athlete id"})
	}

	var req setActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Active == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "active is required"})
	}

	athlete, err := h.athleteRepo.SetActive(c.Context(), athleteID, *req.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Athlete not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update athlete"})
	}

	return c.JSON(fiber.Map{"athlete": athlete})
}

func (h *AthleteHandler) ListSessions(c *fiber.Ctx) error {
	athleteID, err := parseAthleteID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid athlete id"})
	}

	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 || limit > 500 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be between 1 and 500"})
	}

	sessions, err := h.sessionRepo.ListByAthlete(c.Context(), athleteID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load sessions"})
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

func (h *AthleteHandler) GetCurrentLoad(c *fiber.Ctx) error {
	athleteID, err := parseAthleteID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid athlete id"})
	}

	sample, err := h.sampleRepo.Latest(c.Context(), athleteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No load samples recorded yet"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load sample"})
	}

	return c.JSON(fiber.Map{"sample": sample})
}

func (h *AthleteHandler) GetLoadHistory(c *fiber.Ctx) error {
	athleteID, err := parseAthleteID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid athlete id"})
	}

	days, err := strconv.Atoi(c.Query("days", "28"))
	if err != nil || days <= 0 || days > 365 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "days must be between 1 and 365"})
	}

	to := time.Now().UTC().Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -days+1)

	samples, err := h.sampleRepo.ListRange(c.Context(), athleteID, from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load sample history"})
	}

	return c.JSON(fiber.Map{"samples": samples})
}

func parseAthleteID(c *fiber.Ctx) (int64, error) {
	athleteID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || athleteID <= 0 {
		return 0, errors.New("invalid athlete id")
	}
	return athleteID, nil
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/AthleteEngineBack/internal/models"
	"github.com/saeid-a/AthleteEngineBack/internal/repository"
)

type stubAthleteStore struct {
	athletes  map[int64]*models.Athlete
	createErr error
	nextID    int64
}

func newStubAthleteStore(athletes ...*models.Athlete) *stubAthleteStore {
	store := &stubAthleteStore{athletes: map[int64]*models.Athlete{}, nextID: 100}
	for _, a := range athletes {
		store.athletes[a.ID] = a
	}
	return store
}

func (s *stubAthleteStore) Create(_ context.Context, athlete *models.Athlete) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	athlete.ID = s.nextID
	s.athletes[athlete.ID] = athlete
	return nil
}

func (s *stubAthleteStore) GetByID(_ context.Context, id int64) (*models.Athlete, error) {
	athlete, ok := s.athletes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return athlete, nil
}

func (s *stubAthleteStore) SetActive(_ context.Context, id int64, active bool) (*models.Athlete, error) {
	athlete, ok := s.athletes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	athlete.Active = active
	return athlete, nil
}

type stubSessionStore struct {
	gotInput repository.CreateTrainingSessionInput
	sessions []models.TrainingSession
	err      error

	gotLimit int
}

func (s *stubSessionStore) ListByAthlete(_ context.Context, _ int64, limit int) ([]models.TrainingSession, error) {
	s.gotLimit = limit
	return s.sessions, s.err
}

func (s *stubSessionStore) Create(_ context.Context, input repository.CreateTrainingSessionInput) (*models.TrainingSession, error) {
	s.gotInput = input
	if s.err != nil {
		return nil, s.err
	}
	return &models.TrainingSession{
		ID:              1,
		AthleteID:       input.AthleteID,
		SessionDate:     input.SessionDate,
		DurationMinutes: input.DurationMinutes,
		Intensity:       input.Intensity,
		Completed:       input.Completed,
	}, nil
}

type stubSampleReader struct {
	latest  *models.TrainingLoadSample
	samples []models.TrainingLoadSample

	gotFrom time.Time
	gotTo   time.Time
}

func (s *stubSampleReader) Latest(_ context.Context, _ int64) (*models.TrainingLoadSample, error) {
	if s.latest == nil {
		return nil, pgx.ErrNoRows
	}
	return s.latest, nil
}

func (s *stubSampleReader) ListRange(_ context.Context, _ int64, from, to time.Time) ([]models.TrainingLoadSample, error) {
	s.gotFrom = from
	s.gotTo = to
	return s.samples, nil
}

func athleteApp(athletes athleteStore, sessions sessionStore, samples sampleReader) *fiber.App {
	app := fiber.New()
	handler := &AthleteHandler{athleteRepo: athletes, sessionRepo: sessions, sampleRepo: samples}
	app.Post("/api/v1/athletes", handler.CreateAthlete)
	app.Get("/api/v1/athletes/:id", handler.GetAthlete)
	app.Patch("/api/v1/athletes/:id/active", handler.SetAthleteActive)
	app.Post("/api/v1/athletes/:id/sessions", handler.LogSession)
	app.Get("/api/v1/athletes/:id/sessions", handler.ListSessions)
	app.Get("/api/v1/athletes/:id/load", handler.GetCurrentLoad)
	app.Get("/api/v1/athletes/:id/load/history", handler.GetLoadHistory)
	return app
}

func TestCreateAthlete(t *testing.T) {
	store := newStubAthleteStore()
	app := athleteApp(store, &stubSessionStore{}, &stubSampleReader{})

	req := httptest.NewRequest("POST", "/api/v1/athletes", strings.NewReader(`{"name": "  Asha  "}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var payload struct {
		Athlete models.Athlete `json:"athlete"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Athlete.Name != "Asha" {
		t.Errorf("expected a trimmed name, got %q", payload.Athlete.Name)
	}
	if !payload.Athlete.Active {
		t.Error("athletes default to active")
	}
}

func TestCreateAthleteRequiresName(t *testing.T) {
	app := athleteApp(newStubAthleteStore(), &stubSessionStore{}, &stubSampleReader{})

	req := httptest.NewRequest("POST", "/api/v1/athletes", strings.NewReader(`{"name": "   "}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for a blank name, got %d", resp.StatusCode)
	}
}

func TestGetAthleteNotFound(t *testing.T) {
	app := athleteApp(newStubAthleteStore(), &stubSessionStore{}, &stubSampleReader{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/athletes/42", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("expected 404 for an unknown athlete, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/athletes/zero", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for a non-numeric id, got %d", resp.StatusCode)
	}
}

func TestLogSessionNormalisesIntensity(t *testing.T) {
	store := newStubAthleteStore(&models.Athlete{ID: 7, Name: "Asha", Active: true})
	sessions := &stubSessionStore{}
	app := athleteApp(store, sessions, &stubSampleReader{})

	body := `{"session_date": "2025-08-24", "duration_minutes": 60, "intensity": " threshold "}`
	req := httptest.NewRequest("POST", "/api/v1/athletes/7/sessions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	if sessions.gotInput.Intensity != models.IntensityThreshold {
		t.Errorf("expected intensity normalised to THRESHOLD, got %q", sessions.gotInput.Intensity)
	}
	if !sessions.gotInput.Completed {
		t.Error("sessions default to completed")
	}
}

func TestLogSessionValidation(t *testing.T) {
	store := newStubAthleteStore(&models.Athlete{ID: 7, Name: "Asha", Active: true})

	cases := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"bad date", "/api/v1/athletes/7/sessions", `{"session_date": "24/08/2025", "duration_minutes": 60}`, fiber.StatusBadRequest},
		{"zero duration", "/api/v1/athletes/7/sessions", `{"session_date": "2025-08-24", "duration_minutes": 0}`, fiber.StatusBadRequest},
		{"unknown athlete", "/api/v1/athletes/99/sessions", `{"session_date": "2025-08-24", "duration_minutes": 60}`, fiber.StatusNotFound},
	}

	for _, c := range cases {
		app := athleteApp(store, &stubSessionStore{}, &stubSampleReader{})

		req := httptest.NewRequest("POST", c.path, strings.NewReader(c.body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: app.Test: %v", c.name, err)
		}
		if resp.StatusCode != c.status {
			t.Errorf("%s: expected %d, got %d", c.name, c.status, resp.StatusCode)
		}
	}
}

func TestSetAthleteActive(t *testing.T) {
	store := newStubAthleteStore(&models.Athlete{ID: 7, Name: "Asha", Active: true})
	app := athleteApp(store, &stubSessionStore{}, &stubSampleReader{})

	req := httptest.NewRequest("PATCH", "/api/v1/athletes/7/active", strings.NewReader(`{"active": false}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.athletes[7].Active {
		t.Error("athlete should have been deactivated")
	}

	req = httptest.NewRequest("PATCH", "/api/v1/athletes/7/active", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 when active is omitted, got %d", resp.StatusCode)
	}
}

func TestListSessions(t *testing.T) {
	sessions := &stubSessionStore{sessions: []models.TrainingSession{
		{ID: 2, AthleteID: 7, DurationMinutes: 60, Intensity: models.IntensityEasy},
		{ID: 1, AthleteID: 7, DurationMinutes: 40, Intensity: models.IntensityRecovery},
	}}
	app := athleteApp(newStubAthleteStore(), sessions, &stubSampleReader{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/athletes/7/sessions?limit=10", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if sessions.gotLimit != 10 {
		t.Errorf("expected limit 10 forwarded, got %d", sessions.gotLimit)
	}

	var payload struct {
		Sessions []models.TrainingSession `json:"sessions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Sessions) != 2 {
		t.Errorf("expected 2 sessions, got %d", len(payload.Sessions))
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/athletes/7/sessions?limit=0", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for a non-positive limit, got %d", resp.StatusCode)
	}
}

func TestGetCurrentLoad(t *testing.T) {
	samples := &stubSampleReader{latest: &models.TrainingLoadSample{
		AthleteID: 7,
		Ratio:     1.62,
		Zone:      models.ZoneDanger,
	}}
	app := athleteApp(newStubAthleteStore(), &stubSessionStore{}, samples)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/athletes/7/load", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Sample models.TrainingLoadSample `json:"sample"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Sample.Zone != models.ZoneDanger {
		t.Errorf("expected the latest sample, got %+v", payload.Sample)
	}
}

func TestGetCurrentLoadNoSamples(t *testing.T) {
	app := athleteApp(newStubAthleteStore(), &stubSessionStore{}, &stubSampleReader{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/athletes/7/load", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("expected 404 before the first batch run, got %d", resp.StatusCode)
	}
}

func TestGetLoadHistoryWindow(t *testing.T) {
	samples := &stubSampleReader{samples: []models.TrainingLoadSample{}}
	app := athleteApp(newStubAthleteStore(), &stubSessionStore{}, samples)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/athletes/7/load/history?days=7", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if got := samples.gotTo.Sub(samples.gotFrom); got != 6*24*time.Hour {
		t.Errorf("a 7-day window spans 6 days between bounds, got %v", got)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/athletes/7/load/history?days=400", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for a window beyond a year, got %d", resp.StatusCode)
	}
}

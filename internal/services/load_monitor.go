package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/AthleteEngineBack/internal/models"
	"github.com/saeid-a/AthleteEngineBack/internal/repository"
)

// Smoothing constants for the acute (~7-day) and chronic (~28-day)
// horizons. Zone thresholds were tuned against these exact values; do not
// replace them with the textbook EWMA-span formula.
const (
	AcuteAlpha   = 0.4
	ChronicAlpha = 0.1
)

type activeAthleteLister interface {
	ListActive(ctx context.Context) ([]models.Athlete, error)
}

type completedSessionReader interface {
	GetCompletedOnDate(ctx context.Context, athleteID int64, day time.Time) (*models.TrainingSession, error)
}

type loadSampleStore interface {
	LatestBefore(ctx context.Context, athleteID int64, day time.Time) (*models.TrainingLoadSample, error)
	UpsertForDay(ctx context.Context, input repository.UpsertLoadSampleInput) (*models.TrainingLoadSample, error)
}

// RiskNotifier receives athletes entering DANGER or CRITICAL. Delivery
// beyond the process boundary is someone else's problem.
type RiskNotifier interface {
	NotifyHighRisk(alert models.RiskAlert)
}

type BatchResult struct {
	Processed int    `json:"processed"`
	Updated   int    `json:"updated"`
	Errors    int    `json:"errors"`
	Timestamp string `json:"timestamp"`
}

type LoadMonitor struct {
	athleteRepo activeAthleteLister
	sessionRepo completedSessionReader
	sampleRepo  loadSampleStore
	notifier    RiskNotifier
}

func NewLoadMonitor(
	athleteRepo activeAthleteLister,
	sessionRepo completedSessionReader,
	sampleRepo loadSampleStore,
	notifier RiskNotifier,
) *LoadMonitor {
	return &LoadMonitor{
		athleteRepo: athleteRepo,
		sessionRepo: sessionRepo,
		sampleRepo:  sampleRepo,
		notifier:    notifier,
	}
}

// RunNightlyUpdate writes one TrainingLoadSample per active athlete for the
// given day, from the previous day's completed session and the most recent
// prior sample. A failure on one athlete is counted and logged; the batch
// continues. Re-running for the same day recomputes identical samples.
func (m *LoadMonitor) RunNightlyUpdate(ctx context.Context, day time.Time) (BatchResult, error) {
	day = day.UTC().Truncate(24 * time.Hour)
	result := BatchResult{Timestamp: day.Format("2006-01-02")}

	athletes, err := m.athleteRepo.ListActive(ctx)
	if err != nil {
		return result, err
	}

	for _, athlete := range athletes {
		result.Processed++
		sample, err := m.updateAthlete(ctx, athlete, day)
		if err != nil {
			result.Errors++
			log.Printf("load monitor: athlete %d: %v", athlete.ID, err)
			continue
		}
		result.Updated++

		if sample.Zone == models.ZoneDanger || sample.Zone == models.ZoneCritical {
			log.Printf(
				"load monitor: athlete %d (%s) entered %s zone, ratio %.2f",
				athlete.ID, athlete.Name, sample.Zone, sample.Ratio,
			)
			if m.notifier != nil {
				m.notifier.NotifyHighRisk(models.RiskAlert{
					AthleteID:   athlete.ID,
					AthleteName: athlete.Name,
					Day:         result.Timestamp,
					Zone:        sample.Zone,
					InjuryRisk:  sample.InjuryRisk,
					Ratio:       sample.Ratio,
				})
			}
		}
	}

	return result, nil
}

func (m *LoadMonitor) updateAthlete(
	ctx context.Context,
	athlete models.Athlete,
	day time.Time,
) (*models.TrainingLoadSample, error) {
	yesterday := day.AddDate(0, 0, -1)

	dailyLoad := 0.0
	session, err := m.sessionRepo.GetCompletedOnDate(ctx, athlete.ID, yesterday)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if session != nil {
		dailyLoad = float64(session.DurationMinutes) * models.IntensityMultiplier(session.Intensity)
	}

	var prevAcute, prevChronic *float64
	prev, err := m.sampleRepo.LatestBefore(ctx, athlete.ID, day)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if prev != nil {
		prevAcute = &prev.AcuteLoad
		prevChronic = &prev.ChronicLoad
	}

	acute := ewma(prevAcute, dailyLoad, AcuteAlpha)
	chronic := ewma(prevChronic, dailyLoad, ChronicAlpha)

	ratio := 0.0
	if chronic > 0 {
		ratio = acute / chronic
	}
	zone, risk := models.ClassifyWorkloadRatio(ratio)

	return m.sampleRepo.UpsertForDay(ctx, repository.UpsertLoadSampleInput{
		AthleteID:   athlete.ID,
		Day:         day,
		DailyLoad:   dailyLoad,
		AcuteLoad:   acute,
		ChronicLoad: chronic,
		Ratio:       ratio,
		Zone:        zone,
		InjuryRisk:  risk,
	})
}

// ewma blends a new value into the prior smoothed value. With no prior
// value the new value is returned exactly.
func ewma(prev *float64, value, alpha float64) float64 {
	if prev == nil {
		return value
	}
	return alpha*value + (1-alpha)**prev
}

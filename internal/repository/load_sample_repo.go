package repository

import (
	"context"
	"time"

	"github.com/saeid-a/AthleteEngineBack/internal/models"
)

type UpsertLoadSampleInput struct {
	AthleteID   int64
	Day         time.Time
	DailyLoad   float64
	AcuteLoad   float64
	ChronicLoad float64
	Ratio       float64
	Zone        models.LoadZone
	InjuryRisk  models.InjuryRisk
}

type LoadSampleRepository struct {
	db DBTX
}

func NewLoadSampleRepository(db DBTX) *LoadSampleRepository {
	return &LoadSampleRepository{db: db}
}

// UpsertForDay writes the sample for (athlete, day), overwriting an existing
// row so the nightly batch can be re-run safely for the same day.
func (r *LoadSampleRepository) UpsertForDay(
	ctx context.Context,
	input UpsertLoadSampleInput,
) (*models.TrainingLoadSample, error) {
	query := `
		INSERT INTO training_load_samples
			(athlete_id, day, daily_load, acute_load, chronic_load, ratio, zone, injury_risk)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (athlete_id, day) DO UPDATE
		SET daily_load = EXCLUDED.daily_load,
		    acute_load = EXCLUDED.acute_load,
		    chronic_load = EXCLUDED.chronic_load,
		    ratio = EXCLUDED.ratio,
		    zone = EXCLUDED.zone,
		    injury_risk = EXCLUDED.injury_risk
		RETURNING id, athlete_id, day, daily_load, acute_load, chronic_load, ratio, zone, injury_risk, created_at
	`

	var sample models.TrainingLoadSample
	err := r.db.QueryRow(
		ctx,
		query,
		input.AthleteID,
		input.Day,
		input.DailyLoad,
		input.AcuteLoad,
		input.ChronicLoad,
		input.Ratio,
		input.Zone,
		input.InjuryRisk,
	).Scan(
		&sample.ID,
		&sample.AthleteID,
		&sample.Day,
		&sample.DailyLoad,
		&sample.AcuteLoad,
		&sample.ChronicLoad,
		&sample.Ratio,
		&sample.Zone,
		&sample.InjuryRisk,
		&sample.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sample, nil
}

// LatestBefore returns the most recent sample strictly before the given day,
// or pgx.ErrNoRows for a first-ever computation.
func (r *LoadSampleRepository) LatestBefore(
	ctx context.Context,
	athleteID int64,
	day time.Time,
) (*models.TrainingLoadSample, error) {
	query := `
		SELECT id, athlete_id, day, daily_load, acute_load, chronic_load, ratio, zone, injury_risk, created_at
		FROM training_load_samples
		WHERE athlete_id = $1
		  AND day < $2::date
		ORDER BY day DESC
		LIMIT 1
	`
	var sample models.TrainingLoadSample
	err := r.db.QueryRow(ctx, query, athleteID, day).Scan(
		&sample.ID,
		&sample.AthleteID,
		&sample.Day,
		&sample.DailyLoad,
		&sample.AcuteLoad,
		&sample.ChronicLoad,
		&sample.Ratio,
		&sample.Zone,
		&sample.InjuryRisk,
		&sample.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sample, nil
}

func (r *LoadSampleRepository) Latest(
	ctx context.Context,
	athleteID int64,
) (*models.TrainingLoadSample, error) {
	query := `
		SELECT id, athlete_id, day, daily_load, acute_load, chronic_load, ratio, zone, injury_risk, created_at
		FROM training_load_samples
		WHERE athlete_id = $1
		ORDER BY day DESC
		LIMIT 1
	`
	var sample models.TrainingLoadSample
	err := r.db.QueryRow(ctx, query, athleteID).Scan(
		&sample.ID,
		&sample.AthleteID,
		&sample.Day,
		&sample.DailyLoad,
		&sample.AcuteLoad,
		&sample.ChronicLoad,
		&sample.Ratio,
		&sample.Zone,
		&sample.InjuryRisk,
		&sample.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sample, nil
}

func (r *LoadSampleRepository) ListRange(
	ctx context.Context,
	athleteID int64,
	from time.Time,
	to time.Time,
) ([]models.TrainingLoadSample, error) {
	query := `
		SELECT id, athlete_id, day, daily_load, acute_load, chronic_load, ratio, zone, injury_risk, created_at
		FROM training_load_samples
		WHERE athlete_id = $1
		  AND day >= $2::date
		  AND day <= $3::date
		ORDER BY day ASC
	`
	rows, err := r.db.Query(ctx, query, athleteID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	samples := make([]models.TrainingLoadSample, 0)
	for rows.Next() {
		var sample models.TrainingLoadSample
		if err := rows.Scan(
			&sample.ID,
			&sample.AthleteID,
			&sample.Day,
			&sample.DailyLoad,
			&sample.AcuteLoad,
			&sample.ChronicLoad,
			&sample.Ratio,
			&sample.Zone,
			&sample.InjuryRisk,
			&sample.CreatedAt,
		); err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}

package repository

import (
	"context"
	"time"

	"github.com/saeid-a/AthleteEngineBack/internal/models"
)

type CreateTrainingSessionInput struct {
	AthleteID       int64
	SessionDate     time.Time
	DurationMinutes int
	Intensity       string
	Completed       bool
	Notes           *string
}

type TrainingSessionRepository struct {
	db DBTX
}

func NewTrainingSessionRepository(db DBTX) *TrainingSessionRepository {
	return &TrainingSessionRepository{db: db}
}

func (r *TrainingSessionRepository) Create(
	ctx context.Context,
	input CreateTrainingSessionInput,
) (*models.TrainingSession, error) {
	query := `
		INSERT INTO training_sessions (athlete_id, session_date, duration_min, intensity, completed, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, athlete_id, session_date, duration_min, intensity, completed, notes, created_at
	`

	var session models.TrainingSession
	err := r.db.QueryRow(
		ctx,
		query,
		input.AthleteID,
		input.SessionDate,
		input.DurationMinutes,
		input.Intensity,
		input.Completed,
		input.Notes,
	).Scan(
		&session.ID,
		&session.AthleteID,
		&session.SessionDate,
		&session.DurationMinutes,
		&session.Intensity,
		&session.Completed,
		&session.Notes,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetCompletedOnDate returns the completed session logged for the given
// calendar day, or pgx.ErrNoRows when the athlete rested. When multiple
// sessions exist for one day the longest is used.
func (r *TrainingSessionRepository) GetCompletedOnDate(
	ctx context.Context,
	athleteID int64,
	day time.Time,
) (*models.TrainingSession, error) {
	query := `
		SELECT id, athlete_id, session_date, duration_min, intensity, completed, notes, created_at
		FROM training_sessions
		WHERE athlete_id = $1
		  AND session_date = $2::date
		  AND completed = TRUE
		ORDER BY duration_min DESC, id ASC
		LIMIT 1
	`
	var session models.TrainingSession
	err := r.db.QueryRow(ctx, query, athleteID, day).Scan(
		&session.ID,
		&session.AthleteID,
		&session.SessionDate,
		&session.DurationMinutes,
		&session.Intensity,
		&session.Completed,
		&session.Notes,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *TrainingSessionRepository) ListByAthlete(
	ctx context.Context,
	athleteID int64,
	limit int,
) ([]models.TrainingSession, error) {
	query := `
		SELECT id, athlete_id, session_date, duration_min, intensity, completed, notes, created_at
		FROM training_sessions
		WHERE athlete_id = $1
		ORDER BY session_date DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, athleteID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.TrainingSession, 0)
	for rows.Next() {
		var session models.TrainingSession
		if err := rows.Scan(
			&session.ID,
			&session.AthleteID,
			&session.SessionDate,
			&session.DurationMinutes,
			&session.Intensity,
			&session.Completed,
			&session.Notes,
			&session.CreatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

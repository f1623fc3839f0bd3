package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/saeid-a/AthleteEngineBack/internal/models"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type AthleteRepository struct {
	db DBTX
}

func NewAthleteRepository(db DBTX) *AthleteRepository {
	return &AthleteRepository{db: db}
}

func (r *AthleteRepository) Create(ctx context.Context, athlete *models.Athlete) error {
	query := `
		INSERT INTO athletes (name, active)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, athlete.Name, athlete.Active).
		Scan(&athlete.ID, &athlete.CreatedAt, &athlete.UpdatedAt)
}

func (r *AthleteRepository) GetByID(ctx context.Context, id int64) (*models.Athlete, error) {
	query := `
		SELECT id, name, active, created_at, updated_at
		FROM athletes
		WHERE id = $1
	`
	var athlete models.Athlete
	err := r.db.QueryRow(ctx, query, id).
		Scan(&athlete.ID, &athlete.Name, &athlete.Active, &athlete.CreatedAt, &athlete.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &athlete, nil
}

func (r *AthleteRepository) ListActive(ctx context.Context) ([]models.Athlete, error) {
	query := `
		SELECT id, name, active, created_at, updated_at
		FROM athletes
		WHERE active = TRUE
		ORDER BY id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	athletes := make([]models.Athlete, 0)
	for rows.Next() {
		var athlete models.Athlete
		if err := rows.Scan(
			&athlete.ID,
			&athlete.Name,
			&athlete.Active,
			&athlete.CreatedAt,
			&athlete.UpdatedAt,
		); err != nil {
			return nil, err
		}
		athletes = append(athletes, athlete)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return athletes, nil
}

func (r *AthleteRepository) SetActive(ctx context.Context, id int64, active bool) (*models.Athlete, error) {
	query := `
		UPDATE athletes
		SET active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, active, created_at, updated_at
	`
	var athlete models.Athlete
	err := r.db.QueryRow(ctx, query, id, active).
		Scan(&athlete.ID, &athlete.Name, &athlete.Active, &athlete.CreatedAt, &athlete.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &athlete, nil
}

package models

import "time"

type Athlete struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TrainingSession struct {
	ID              int64     `json:"id"`
	AthleteID       int64     `json:"athlete_id"`
	SessionDate     time.Time `json:"session_date"`
	DurationMinutes int       `json:"duration_minutes"`
	Intensity       string    `json:"intensity"`
	Completed       bool      `json:"completed"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

// Session intensity labels as logged by coaches or device imports.
const (
	IntensityRecovery  = "RECOVERY"
	IntensityEasy      = "EASY"
	IntensityModerate  = "MODERATE"
	IntensityThreshold = "THRESHOLD"
	IntensityInterval  = "INTERVAL"
	IntensityMax       = "MAX"
)

package models

// TimeTrialObservation is one maximal timed trial over a known distance.
// Observations are supplied per estimation request and are not persisted.
type TimeTrialObservation struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
	AvgHeartRate    *int    `json:"avg_heart_rate,omitempty"`
	PerceivedEffort *int    `json:"perceived_effort,omitempty"`
}

type FitQuality string

const (
	QualityExcellent FitQuality = "EXCELLENT"
	QualityGood      FitQuality = "GOOD"
	QualityFair      FitQuality = "FAIR"
	QualityPoor      FitQuality = "POOR"
)

type ConfidenceLevel string

const (
	ConfidenceVeryHigh ConfidenceLevel = "VERY_HIGH"
	ConfidenceHigh     ConfidenceLevel = "HIGH"
	ConfidenceMedium   ConfidenceLevel = "MEDIUM"
	ConfidenceLow      ConfidenceLevel = "LOW"
)

// ThresholdEstimate is the derived result of one estimation call.
type ThresholdEstimate struct {
	ThresholdVelocity    float64         `json:"threshold_velocity_mps"`
	ThresholdPaceSeconds float64         `json:"threshold_pace_sec_per_km"`
	ThresholdPace        string          `json:"threshold_pace"`
	CapacityReserve      float64         `json:"capacity_reserve_meters"`
	RSquared             float64         `json:"r_squared"`
	Quality              FitQuality      `json:"quality"`
	Confidence           ConfidenceLevel `json:"confidence"`
	Warnings             []string        `json:"warnings"`
	Recommendations      []string        `json:"recommendations"`
}

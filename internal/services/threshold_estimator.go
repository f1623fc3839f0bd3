package services

import (
	"errors"
	"fmt"

	"github.com/saeid-a/AthleteEngineBack/internal/models"
	"github.com/saeid-a/AthleteEngineBack/pkg/utils"
)

var (
	ErrInsufficientObservations = errors.New("at least 2 time trial observations are required")
	ErrInvalidObservation       = errors.New("observations must have positive distance and duration")
	ErrDegenerateObservations   = errors.New("observations do not describe a decreasing velocity profile")
)

// Validation bounds. Violations degrade accuracy but do not stop the
// estimate; they come back as warnings.
const (
	minDistanceSpread    = 2.5
	maxDistanceSpread    = 4.0
	minRecoveryHours     = 48.0
	minTrialDurationSec  = 180.0
	maxTrialDurationSec  = 900.0
	lowCapacityReserveM  = 150.0
	highCapacityReserveM = 300.0
)

type ThresholdEstimator struct{}

func NewThresholdEstimator() *ThresholdEstimator {
	return &ThresholdEstimator{}
}

// Estimate fits time = slope*distance + intercept over the observations and
// derives the critical-velocity analogue (1/slope) and the finite capacity
// reserve above it (-intercept/slope). Pure; no persistence.
func (e *ThresholdEstimator) Estimate(
	observations []models.TimeTrialObservation,
	recoveryHours float64,
) (*models.ThresholdEstimate, error) {
	if len(observations) < 2 {
		return nil, ErrInsufficientObservations
	}
	for _, obs := range observations {
		if obs.DistanceMeters <= 0 || obs.DurationSeconds <= 0 {
			return nil, ErrInvalidObservation
		}
	}

	warnings := validateObservations(observations, recoveryHours)

	slope, intercept, ok := fitLeastSquares(observations)
	if !ok || slope <= 0 {
		return nil, ErrDegenerateObservations
	}

	velocity := 1 / slope
	paceSeconds := 1000 / velocity
	reserve := -intercept / slope
	rSquared := goodnessOfFit(observations, slope, intercept)

	quality, confidence := classifyFit(rSquared)
	if reserve <= 0 {
		warnings = append(warnings, "estimated capacity reserve is not positive; trial pacing was likely inconsistent")
	}

	return &models.ThresholdEstimate{
		ThresholdVelocity:    velocity,
		ThresholdPaceSeconds: paceSeconds,
		ThresholdPace:        utils.FormatPace(paceSeconds),
		CapacityReserve:      reserve,
		RSquared:             rSquared,
		Quality:              quality,
		Confidence:           confidence,
		Warnings:             warnings,
		Recommendations:      buildRecommendations(paceSeconds, reserve, rSquared),
	}, nil
}

func validateObservations(observations []models.TimeTrialObservation, recoveryHours float64) []string {
	warnings := make([]string, 0)

	shortest, longest := observations[0].DistanceMeters, observations[0].DistanceMeters
	for _, obs := range observations[1:] {
		if obs.DistanceMeters < shortest {
			shortest = obs.DistanceMeters
		}
		if obs.DistanceMeters > longest {
			longest = obs.DistanceMeters
		}
	}
	spread := longest / shortest
	if spread < minDistanceSpread || spread > maxDistanceSpread {
		warnings = append(warnings, fmt.Sprintf(
			"distance spread %.1fx is outside the recommended %.1f-%.1fx range; accuracy is reduced",
			spread, minDistanceSpread, maxDistanceSpread,
		))
	}

	if recoveryHours > 0 && recoveryHours < minRecoveryHours {
		warnings = append(warnings, fmt.Sprintf(
			"only %.0fh recovery between trials; at least %.0fh is recommended",
			recoveryHours, minRecoveryHours,
		))
	}

	for _, obs := range observations {
		if obs.DurationSeconds < minTrialDurationSec || obs.DurationSeconds > maxTrialDurationSec {
			warnings = append(warnings, fmt.Sprintf(
				"trial over %.0fm lasted %.0fs, outside the 3-15 minute window that anchors the model",
				obs.DistanceMeters, obs.DurationSeconds,
			))
		}
	}

	return warnings
}

func fitLeastSquares(observations []models.TimeTrialObservation) (slope, intercept float64, ok bool) {
	n := float64(len(observations))
	var sumX, sumY, sumXY, sumXX float64
	for _, obs := range observations {
		sumX += obs.DistanceMeters
		sumY += obs.DurationSeconds
		sumXY += obs.DistanceMeters * obs.DurationSeconds
		sumXX += obs.DistanceMeters * obs.DistanceMeters
	}

	denominator := n*sumXX - sumX*sumX
	if denominator == 0 {
		return 0, 0, false
	}

	slope = (n*sumXY - sumX*sumY) / denominator
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, true
}

func goodnessOfFit(observations []models.TimeTrialObservation, slope, intercept float64) float64 {
	n := float64(len(observations))
	var sumY float64
	for _, obs := range observations {
		sumY += obs.DurationSeconds
	}
	meanY := sumY / n

	var ssRes, ssTot float64
	for _, obs := range observations {
		predicted := slope*obs.DistanceMeters + intercept
		ssRes += (obs.DurationSeconds - predicted) * (obs.DurationSeconds - predicted)
		ssTot += (obs.DurationSeconds - meanY) * (obs.DurationSeconds - meanY)
	}

	// Two observations always fit exactly; ssTot can be 0 when all trial
	// times are equal. Either way the model explains everything it can.
	if ssTot == 0 {
		return 1.0
	}
	return 1 - ssRes/ssTot
}

func classifyFit(rSquared float64) (models.FitQuality, models.ConfidenceLevel) {
	switch {
	case rSquared > 0.95:
		return models.QualityExcellent, models.ConfidenceVeryHigh
	case rSquared > 0.90:
		return models.QualityGood, models.ConfidenceHigh
	case rSquared > 0.85:
		return models.QualityFair, models.ConfidenceMedium
	default:
		return models.QualityPoor, models.ConfidenceMedium
	}
}

func buildRecommendations(paceSeconds, reserve, rSquared float64) []string {
	recommendations := make([]string, 0, 4)

	if rSquared < 0.90 {
		recommendations = append(recommendations,
			"Fit quality is below target; retest after full recovery with even pacing on both trials")
	}

	intervalPace := utils.FormatPace(paceSeconds * 0.97)
	repeatPace := utils.FormatPace(paceSeconds * 1.03)
	recommendations = append(recommendations,
		fmt.Sprintf("VO2max intervals: %s per km (3%% faster than threshold pace)", intervalPace),
		fmt.Sprintf("Threshold repeats: %s per km (3%% slower than threshold pace)", repeatPace),
	)

	switch {
	case reserve > 0 && reserve < lowCapacityReserveM:
		recommendations = append(recommendations, fmt.Sprintf(
			"Capacity reserve is low (%.0fm); prioritise aerobic-capacity work before racing short events", reserve))
	case reserve > highCapacityReserveM:
		recommendations = append(recommendations, fmt.Sprintf(
			"Capacity reserve is high (%.0fm); longer above-threshold intervals are well tolerated", reserve))
	}

	return recommendations
}

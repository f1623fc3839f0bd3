package services

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/saeid-a/AthleteEngineBack/internal/models"
)

func obs(distance, duration float64) models.TimeTrialObservation {
	return models.TimeTrialObservation{DistanceMeters: distance, DurationSeconds: duration}
}

func TestEstimateTwoPointFit(t *testing.T) {
	estimator := NewThresholdEstimator()

	estimate, err := estimator.Estimate([]models.TimeTrialObservation{
		obs(1200, 240),
		obs(3000, 660),
	}, 72)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	// slope = (660-240)/(3000-1200) = 0.23333 s/m
	if math.Abs(estimate.ThresholdVelocity-4.2857) > 1e-3 {
		t.Errorf("expected threshold velocity ~4.286 m/s, got %v", estimate.ThresholdVelocity)
	}
	if math.Abs(estimate.ThresholdPaceSeconds-233.33) > 0.1 {
		t.Errorf("expected pace ~233.3 s/km, got %v", estimate.ThresholdPaceSeconds)
	}
	if estimate.ThresholdPace != "3:53" {
		t.Errorf("expected rendered pace 3:53, got %q", estimate.ThresholdPace)
	}
	// intercept = (900 - 0.23333*4200)/2 = -40 => reserve = 40/0.23333
	if math.Abs(estimate.CapacityReserve-171.43) > 0.1 {
		t.Errorf("expected capacity reserve ~171.4m, got %v", estimate.CapacityReserve)
	}
	if estimate.RSquared != 1.0 {
		t.Errorf("two points must fit exactly, got R^2 %v", estimate.RSquared)
	}
	if math.IsNaN(estimate.RSquared) {
		t.Error("R^2 must not be NaN for a two-point fit")
	}
	if estimate.Quality != models.QualityExcellent || estimate.Confidence != models.ConfidenceVeryHigh {
		t.Errorf("expected EXCELLENT/VERY_HIGH, got %s/%s", estimate.Quality, estimate.Confidence)
	}
}

func TestEstimateRejectsSingleObservation(t *testing.T) {
	estimator := NewThresholdEstimator()

	estimate, err := estimator.Estimate([]models.TimeTrialObservation{obs(3000, 660)}, 72)
	if !errors.Is(err, ErrInsufficientObservations) {
		t.Fatalf("expected ErrInsufficientObservations, got %v", err)
	}
	if estimate != nil {
		t.Error("no numeric result may be produced for a rejected input")
	}
}

func TestEstimateRejectsNonPositiveInputs(t *testing.T) {
	estimator := NewThresholdEstimator()

	if _, err := estimator.Estimate([]models.TimeTrialObservation{
		obs(0, 240),
		obs(3000, 660),
	}, 72); !errors.Is(err, ErrInvalidObservation) {
		t.Errorf("expected ErrInvalidObservation for zero distance, got %v", err)
	}

	if _, err := estimator.Estimate([]models.TimeTrialObservation{
		obs(1200, -5),
		obs(3000, 660),
	}, 72); !errors.Is(err, ErrInvalidObservation) {
		t.Errorf("expected ErrInvalidObservation for negative duration, got %v", err)
	}
}

func TestEstimateRejectsDegenerateProfiles(t *testing.T) {
	estimator := NewThresholdEstimator()

	// All trials over the same distance: the normal equations collapse.
	if _, err := estimator.Estimate([]models.TimeTrialObservation{
		obs(3000, 640),
		obs(3000, 660),
	}, 72); !errors.Is(err, ErrDegenerateObservations) {
		t.Errorf("expected ErrDegenerateObservations for equal distances, got %v", err)
	}

	// Longer trial faster than the shorter one: negative slope.
	if _, err := estimator.Estimate([]models.TimeTrialObservation{
		obs(1200, 660),
		obs(3000, 240),
	}, 72); !errors.Is(err, ErrDegenerateObservations) {
		t.Errorf("expected ErrDegenerateObservations for a negative slope, got %v", err)
	}
}

func TestEstimateWarnsWithoutFailing(t *testing.T) {
	estimator := NewThresholdEstimator()

	estimate, err := estimator.Estimate([]models.TimeTrialObservation{
		obs(400, 70),
		obs(5000, 1150),
	}, 24)
	if err != nil {
		t.Fatalf("Estimate should still produce a result, got %v", err)
	}

	wantFragments := []string{
		"distance spread",
		"recovery",
		"3-15 minute",
	}
	for _, fragment := range wantFragments {
		found := false
		for _, warning := range estimate.Warnings {
			if strings.Contains(warning, fragment) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected a warning mentioning %q, got %v", fragment, estimate.Warnings)
		}
	}
}

func TestEstimateNoWarningsForCleanProtocol(t *testing.T) {
	estimator := NewThresholdEstimator()

	estimate, err := estimator.Estimate([]models.TimeTrialObservation{
		obs(1200, 240),
		obs(3000, 660),
	}, 72)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if len(estimate.Warnings) != 0 {
		t.Errorf("expected no warnings for a clean protocol, got %v", estimate.Warnings)
	}
}

func TestClassifyFitBands(t *testing.T) {
	cases := []struct {
		rSquared   float64
		quality    models.FitQuality
		confidence models.ConfidenceLevel
	}{
		{1.0, models.QualityExcellent, models.ConfidenceVeryHigh},
		{0.96, models.QualityExcellent, models.ConfidenceVeryHigh},
		{0.95, models.QualityGood, models.ConfidenceHigh},
		{0.92, models.QualityGood, models.ConfidenceHigh},
		{0.90, models.QualityFair, models.ConfidenceMedium},
		{0.86, models.QualityFair, models.ConfidenceMedium},
		{0.85, models.QualityPoor, models.ConfidenceMedium},
		{0.10, models.QualityPoor, models.ConfidenceMedium},
	}

	for _, c := range cases {
		quality, confidence := classifyFit(c.rSquared)
		if quality != c.quality || confidence != c.confidence {
			t.Errorf("classifyFit(%v) = %s/%s, expected %s/%s",
				c.rSquared, quality, confidence, c.quality, c.confidence)
		}
	}
}

func TestBuildRecommendations(t *testing.T) {
	poor := buildRecommendations(240, 100, 0.85)
	if !containsFragment(poor, "retest") {
		t.Errorf("expected a retest recommendation for a weak fit, got %v", poor)
	}
	if !containsFragment(poor, "aerobic-capacity") {
		t.Errorf("expected an aerobic-capacity recommendation for a low reserve, got %v", poor)
	}

	strong := buildRecommendations(240, 400, 0.99)
	if containsFragment(strong, "retest") {
		t.Errorf("no retest recommendation expected for a strong fit, got %v", strong)
	}
	if !containsFragment(strong, "longer above-threshold") {
		t.Errorf("expected a long-intervals recommendation for a high reserve, got %v", strong)
	}
	if !containsFragment(strong, "3% faster") || !containsFragment(strong, "3% slower") {
		t.Errorf("expected adjusted training paces either side of threshold, got %v", strong)
	}
}

func containsFragment(list []string, fragment string) bool {
	for _, item := range list {
		if strings.Contains(item, fragment) {
			return true
		}
	}
	return false
}

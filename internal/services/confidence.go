package services

import (
	"math"
	"time"

	"github.com/saeid-a/AthleteEngineBack/internal/models"
)

// Gates on the numeric confidence score. Below SupervisedThreshold the
// action must not proceed at all.
const (
	AutoApplyThreshold  = 0.8
	SupervisedThreshold = 0.6
)

// Factor weights; they sum to 1.
const (
	weightDataFreshness      = 0.15
	weightDataCompleteness   = 0.25
	weightPatternStrength    = 0.15
	weightHistoricalAccuracy = 0.10
	weightSafetyAlignment    = 0.35
)

const defaultHistoricalAccuracy = 0.7

// expectedSnapshotFields: 4 readiness sub-scores, 3 load fields, 2
// behavior fields.
const expectedSnapshotFields = 9

var severityMultipliers = map[string]float64{
	"CRITICAL": 1.0,
	"HIGH":     0.9,
	"MEDIUM":   0.7,
	"LOW":      0.5,
}

const unknownSeverityMultiplier = 0.3

type ConfidenceScorer struct{}

func NewConfidenceScorer() *ConfidenceScorer {
	return &ConfidenceScorer{}
}

// Score rates how much an autonomously proposed action can be trusted,
// from the perception snapshot it was derived from and an optional
// historical-accuracy prior for this action type.
func (s *ConfidenceScorer) Score(
	action models.ProposedAction,
	snapshot models.PerceptionSnapshot,
	historicalAccuracy *float64,
) models.ConfidenceScore {
	breakdown := models.ConfidenceBreakdown{
		DataFreshness:      dataFreshness(time.Since(snapshot.CapturedAt)),
		DataCompleteness:   dataCompleteness(snapshot),
		PatternStrength:    patternStrength(snapshot.Behavior),
		HistoricalAccuracy: defaultHistoricalAccuracy,
		SafetyAlignment:    safetyAlignment(action, snapshot),
	}
	if historicalAccuracy != nil {
		breakdown.HistoricalAccuracy = *historicalAccuracy
	}

	score := round2(
		breakdown.DataFreshness*weightDataFreshness +
			breakdown.DataCompleteness*weightDataCompleteness +
			breakdown.PatternStrength*weightPatternStrength +
			breakdown.HistoricalAccuracy*weightHistoricalAccuracy +
			breakdown.SafetyAlignment*weightSafetyAlignment,
	)

	return models.ConfidenceScore{
		Score:     score,
		Level:     confidenceLevel(score),
		Breakdown: breakdown,
	}
}

// Explain surfaces up to four operator-facing observations about the score.
// Advisory text only; the numeric contract lives in Score.
func (s *ConfidenceScorer) Explain(result models.ConfidenceScore) []string {
	observations := make([]string, 0, 4)
	if result.Breakdown.DataFreshness < 0.5 {
		observations = append(observations, "Perception data is stale; confidence is reduced until a fresher snapshot arrives")
	}
	if result.Breakdown.DataCompleteness < 0.7 {
		observations = append(observations, "Several snapshot fields are missing; the action is judged on partial data")
	}
	if result.Breakdown.PatternStrength > 0.8 {
		observations = append(observations, "Detected behavioral patterns strongly support this action")
	}
	if result.Breakdown.SafetyAlignment >= 0.95 {
		observations = append(observations, "The action is strongly aligned with protecting the athlete")
	}
	return observations
}

func confidenceLevel(score float64) models.ConfidenceLevel {
	switch {
	case score >= 0.95:
		return models.ConfidenceVeryHigh
	case score >= AutoApplyThreshold:
		return models.ConfidenceHigh
	case score >= SupervisedThreshold:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// dataFreshness decays from 1.0 to 0.5 between 1h and 6h of snapshot age,
// then to the 0.1 floor at 24h.
func dataFreshness(age time.Duration) float64 {
	hours := age.Hours()
	switch {
	case hours < 1:
		return 1.0
	case hours < 6:
		return 1.0 - 0.5*(hours-1)/5
	case hours < 24:
		return 0.5 - 0.4*(hours-6)/18
	default:
		return 0.1
	}
}

func dataCompleteness(snapshot models.PerceptionSnapshot) float64 {
	present := 0

	for _, field := range []*float64{
		snapshot.Readiness.Sleep,
		snapshot.Readiness.Fatigue,
		snapshot.Readiness.Soreness,
		snapshot.Readiness.Stress,
		snapshot.Load.AcuteLoad,
		snapshot.Load.ChronicLoad,
	} {
		if field != nil {
			present++
		}
	}
	if snapshot.Load.Zone != "" {
		present++
	}
	if snapshot.Behavior.Patterns != nil {
		present++
	}
	if snapshot.Behavior.OverallSeverity != "" {
		present++
	}

	return float64(present) / expectedSnapshotFields
}

func patternStrength(behavior models.BehaviorSnapshot) float64 {
	if len(behavior.Patterns) == 0 {
		return 0.5
	}

	multiplier, ok := severityMultipliers[behavior.OverallSeverity]
	if !ok {
		multiplier = unknownSeverityMultiplier
	}

	var total float64
	for _, pattern := range behavior.Patterns {
		total += pattern.Confidence
	}
	return total / float64(len(behavior.Patterns)) * multiplier
}

func safetyAlignment(action models.ProposedAction, snapshot models.PerceptionSnapshot) float64 {
	if action.Urgency == models.UrgencyUrgent {
		return 1.0
	}

	switch action.Type {
	case models.ActionReduceLoad:
		switch snapshot.Load.Zone {
		case models.ZoneCritical:
			return 1.0
		case models.ZoneDanger:
			return 0.95
		case models.ZoneCaution:
			return 0.85
		default:
			return 0.7
		}
	case models.ActionEscalate:
		if snapshot.InjuryActive {
			return 0.95
		}
		return 0.7
	default:
		return 0.6
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

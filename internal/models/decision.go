package models

import "time"

type FactorWeight string

const (
	WeightLow    FactorWeight = "LOW"
	WeightMedium FactorWeight = "MEDIUM"
	WeightHigh   FactorWeight = "HIGH"
)

type FactorVote string

const (
	VoteSkip     FactorVote = "SKIP"
	VoteConsider FactorVote = "CONSIDER"
	VoteAccept   FactorVote = "ACCEPT"
)

// DecisionFactor is one weighted input to an aggregate recommendation.
// Factors are ephemeral; they exist only within a single decision call.
type DecisionFactor struct {
	Label     string       `json:"label"`
	Weight    FactorWeight `json:"weight"`
	Vote      FactorVote   `json:"vote"`
	Reasoning string       `json:"reasoning"`
}

type RaceImportance string

const (
	ImportanceA RaceImportance = "A"
	ImportanceB RaceImportance = "B"
	ImportanceC RaceImportance = "C"
)

type RaceDecision string

const (
	RaceNotRecommended     RaceDecision = "NOT_RECOMMENDED"
	RaceLikelyDecline      RaceDecision = "LIKELY_DECLINE"
	RaceAcceptTrainingRace RaceDecision = "ACCEPT_TRAINING_RACE"
	RaceAcceptWithTaper    RaceDecision = "ACCEPT_WITH_TAPER"
)

type ProposedRace struct {
	Date       time.Time      `json:"date"`
	Importance RaceImportance `json:"importance"`
}

type GoalRace struct {
	Date       time.Time      `json:"date"`
	Importance RaceImportance `json:"importance"`
}

// Training phase goals as set on the athlete's active program.
const (
	PhaseVolumeBuilding = "VOLUME_BUILDING"
	PhaseRecovery       = "RECOVERY"
	PhaseCompetition    = "COMPETITION"
	PhaseTaper          = "TAPER"
)

const (
	MotivationLow    = "LOW"
	MotivationNormal = "NORMAL"
	MotivationHigh   = "HIGH"
)

type AthleteStatus struct {
	DaysSinceLastRace *int     `json:"days_since_last_race"`
	WorkloadRatio     *float64 `json:"workload_ratio"`
	PhaseGoals        []string `json:"phase_goals"`
	Motivation        string   `json:"motivation"`
}

type RaceRecommendation struct {
	Factors        []DecisionFactor `json:"factors"`
	Recommendation RaceDecision     `json:"recommendation"`
	Rationale      string           `json:"rationale"`
}

// Autonomous-agent confidence inputs.

const (
	UrgencyUrgent  = "URGENT"
	UrgencyRoutine = "ROUTINE"
)

const (
	ActionReduceLoad = "REDUCE_LOAD"
	ActionEscalate   = "ESCALATE"
)

type ProposedAction struct {
	Type    string `json:"type"`
	Urgency string `json:"urgency"`
}

type ReadinessScores struct {
	Sleep    *float64 `json:"sleep"`
	Fatigue  *float64 `json:"fatigue"`
	Soreness *float64 `json:"soreness"`
	Stress   *float64 `json:"stress"`
}

type LoadSnapshot struct {
	AcuteLoad   *float64 `json:"acute_load"`
	ChronicLoad *float64 `json:"chronic_load"`
	Zone        LoadZone `json:"zone"`
}

type DetectedPattern struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

type BehaviorSnapshot struct {
	Patterns        []DetectedPattern `json:"patterns"`
	OverallSeverity string            `json:"overall_severity"`
}

// PerceptionSnapshot is the agent's view of the athlete at decision time.
type PerceptionSnapshot struct {
	Readiness    ReadinessScores  `json:"readiness"`
	Load         LoadSnapshot     `json:"load"`
	Behavior     BehaviorSnapshot `json:"behavior"`
	InjuryActive bool             `json:"injury_active"`
	CapturedAt   time.Time        `json:"captured_at"`
}

type ConfidenceBreakdown struct {
	DataFreshness      float64 `json:"data_freshness"`
	DataCompleteness   float64 `json:"data_completeness"`
	PatternStrength    float64 `json:"pattern_strength"`
	HistoricalAccuracy float64 `json:"historical_accuracy"`
	SafetyAlignment    float64 `json:"safety_alignment"`
}

type ConfidenceScore struct {
	Score     float64             `json:"score"`
	Level     ConfidenceLevel     `json:"level"`
	Breakdown ConfidenceBreakdown `json:"breakdown"`
}

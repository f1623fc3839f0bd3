package models

import "time"

type LoadZone string

const (
	ZoneDetraining LoadZone = "DETRAINING"
	ZoneOptimal    LoadZone = "OPTIMAL"
	ZoneCaution    LoadZone = "CAUTION"
	ZoneDanger     LoadZone = "DANGER"
	ZoneCritical   LoadZone = "CRITICAL"
)

type InjuryRisk string

const (
	RiskLow      InjuryRisk = "LOW"
	RiskModerate InjuryRisk = "MODERATE"
	RiskHigh     InjuryRisk = "HIGH"
	RiskVeryHigh InjuryRisk = "VERY_HIGH"
)

// TrainingLoadSample is the nightly record of an athlete's smoothed workload.
// Exactly one row exists per athlete per day; re-running the batch for the
// same day overwrites it with identical values.
type TrainingLoadSample struct {
	ID          int64      `json:"id"`
	AthleteID   int64      `json:"athlete_id"`
	Day         time.Time  `json:"day"`
	DailyLoad   float64    `json:"daily_load"`
	AcuteLoad   float64    `json:"acute_load"`
	ChronicLoad float64    `json:"chronic_load"`
	Ratio       float64    `json:"ratio"`
	Zone        LoadZone   `json:"zone"`
	InjuryRisk  InjuryRisk `json:"injury_risk"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IntensityMultipliers converts session duration into training load units.
var IntensityMultipliers = map[string]float64{
	IntensityRecovery:  0.5,
	IntensityEasy:      0.6,
	IntensityModerate:  0.75,
	IntensityThreshold: 1.0,
	IntensityInterval:  1.2,
	IntensityMax:       1.5,
}

const DefaultIntensityMultiplier = 0.7

func IntensityMultiplier(intensity string) float64 {
	if m, ok := IntensityMultipliers[intensity]; ok {
		return m
	}
	return DefaultIntensityMultiplier
}

// Workload-ratio band boundaries. The detraining bound is exclusive
// (ratio 0.8 is OPTIMAL); the remaining bounds are inclusive (1.3 is
// OPTIMAL, 2.0 is DANGER). These boundaries are shared with the race
// acceptance advisor and must not be duplicated elsewhere.
const (
	RatioDetrainingMax = 0.8
	RatioOptimalMax    = 1.3
	RatioCautionMax    = 1.5
	RatioDangerMax     = 2.0
)

type RatioBand struct {
	Upper          float64
	UpperInclusive bool
	Zone           LoadZone
	Risk           InjuryRisk
}

// WorkloadRatioBands is evaluated in order; ratios above the last band
// are CRITICAL / VERY_HIGH.
var WorkloadRatioBands = []RatioBand{
	{Upper: RatioDetrainingMax, UpperInclusive: false, Zone: ZoneDetraining, Risk: RiskLow},
	{Upper: RatioOptimalMax, UpperInclusive: true, Zone: ZoneOptimal, Risk: RiskLow},
	{Upper: RatioCautionMax, UpperInclusive: true, Zone: ZoneCaution, Risk: RiskModerate},
	{Upper: RatioDangerMax, UpperInclusive: true, Zone: ZoneDanger, Risk: RiskHigh},
}

func ClassifyWorkloadRatio(ratio float64) (LoadZone, InjuryRisk) {
	for _, band := range WorkloadRatioBands {
		if ratio < band.Upper || (band.UpperInclusive && ratio == band.Upper) {
			return band.Zone, band.Risk
		}
	}
	return ZoneCritical, RiskVeryHigh
}

// RiskAlert is pushed to subscribed coaches when an athlete's sample lands
// in DANGER or CRITICAL.
type RiskAlert struct {
	AthleteID   int64      `json:"athlete_id"`
	AthleteName string     `json:"athlete_name"`
	Day         string     `json:"day"`
	Zone        LoadZone   `json:"zone"`
	InjuryRisk  InjuryRisk `json:"injury_risk"`
	Ratio       float64    `json:"ratio"`
}

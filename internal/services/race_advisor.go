package services

import (
	"fmt"

	"github.com/saeid-a/AthleteEngineBack/internal/models"
)

// Ratio above which a proposed race needs a conditional look even though
// the athlete is still inside the OPTIMAL training band.
const ratioRaceCaution = 1.2

type RaceAdvisor struct{}

func NewRaceAdvisor() *RaceAdvisor {
	return &RaceAdvisor{}
}

// Recommend evaluates a proposed race against the athlete's current state
// and an optional upcoming goal race. Every emitted factor carries its own
// reasoning; the aggregate keeps them for the coach to inspect.
func (a *RaceAdvisor) Recommend(
	race models.ProposedRace,
	status models.AthleteStatus,
	goal *models.GoalRace,
) models.RaceRecommendation {
	factors := make([]models.DecisionFactor, 0, 9)

	appendFactor := func(factor *models.DecisionFactor) {
		if factor != nil {
			factors = append(factors, *factor)
		}
	}

	appendFactor(recoveryFactor(status.DaysSinceLastRace, race.Importance))
	appendFactor(workloadFactor(status.WorkloadRatio))
	appendFactor(goalProximityFactor(race, goal))
	for _, phase := range status.PhaseGoals {
		appendFactor(phaseFactor(phase))
	}
	appendFactor(motivationFactor(status.Motivation, race.Importance))

	decision, rationale := aggregateRaceFactors(race.Importance, factors)

	return models.RaceRecommendation{
		Factors:        factors,
		Recommendation: decision,
		Rationale:      rationale,
	}
}

func recoveryFactor(daysSinceLastRace *int, importance models.RaceImportance) *models.DecisionFactor {
	if daysSinceLastRace == nil {
		return nil
	}
	days := *daysSinceLastRace

	if days < 7 {
		return &models.DecisionFactor{
			Label:     "recovery_window",
			Weight:    models.WeightHigh,
			Vote:      models.VoteSkip,
			Reasoning: fmt.Sprintf("Only %d days since the last race; a minimum recovery week is not complete", days),
		}
	}
	if days <= 14 {
		vote := models.VoteSkip
		reasoning := fmt.Sprintf("%d days since the last race is short for an important race", days)
		if importance == models.ImportanceC {
			vote = models.VoteConsider
			reasoning = fmt.Sprintf("%d days since the last race is workable for a low-key race", days)
		}
		return &models.DecisionFactor{
			Label:     "recovery_window",
			Weight:    models.WeightMedium,
			Vote:      vote,
			Reasoning: reasoning,
		}
	}
	return nil
}

func workloadFactor(ratio *float64) *models.DecisionFactor {
	if ratio == nil {
		return nil
	}
	r := *ratio

	switch {
	case r > models.RatioOptimalMax:
		return &models.DecisionFactor{
			Label:     "workload_ratio",
			Weight:    models.WeightHigh,
			Vote:      models.VoteSkip,
			Reasoning: fmt.Sprintf("Workload ratio %.2f is above the optimal band; racing would stack risk on risk", r),
		}
	case r > ratioRaceCaution:
		return &models.DecisionFactor{
			Label:     "workload_ratio",
			Weight:    models.WeightMedium,
			Vote:      models.VoteConsider,
			Reasoning: fmt.Sprintf("Workload ratio %.2f is at the top of the optimal band; race only if it replaces a hard session", r),
		}
	case r < models.RatioDetrainingMax:
		return &models.DecisionFactor{
			Label:     "workload_ratio",
			Weight:    models.WeightMedium,
			Vote:      models.VoteConsider,
			Reasoning: fmt.Sprintf("Workload ratio %.2f signals under-training; a race could be a useful stimulus", r),
		}
	default:
		return nil
	}
}

func goalProximityFactor(race models.ProposedRace, goal *models.GoalRace) *models.DecisionFactor {
	if goal == nil || goal.Date.Before(race.Date) {
		return nil
	}
	days := int(goal.Date.Sub(race.Date).Hours() / 24)

	switch {
	case days <= 14:
		return &models.DecisionFactor{
			Label:     "goal_race_proximity",
			Weight:    models.WeightHigh,
			Vote:      models.VoteSkip,
			Reasoning: fmt.Sprintf("Goal race is only %d days away; nothing should compromise it now", days),
		}
	case days <= 21:
		vote := models.VoteSkip
		reasoning := fmt.Sprintf("Goal race in %d days leaves little room to absorb another race", days)
		if race.Importance == models.ImportanceC {
			vote = models.VoteConsider
			reasoning = fmt.Sprintf("Goal race in %d days; a low-key race can work as a sharpener if kept controlled", days)
		}
		return &models.DecisionFactor{
			Label:     "goal_race_proximity",
			Weight:    models.WeightMedium,
			Vote:      vote,
			Reasoning: reasoning,
		}
	case days <= 42:
		vote := models.VoteConsider
		reasoning := fmt.Sprintf("Goal race in %d days; a tune-up race fits the build", days)
		if race.Importance == models.ImportanceA {
			vote = models.VoteSkip
			reasoning = fmt.Sprintf("Goal race in %d days; a second all-out race would split the peak", days)
		}
		return &models.DecisionFactor{
			Label:     "goal_race_proximity",
			Weight:    models.WeightLow,
			Vote:      vote,
			Reasoning: reasoning,
		}
	default:
		return nil
	}
}

func phaseFactor(phase string) *models.DecisionFactor {
	switch phase {
	case models.PhaseVolumeBuilding:
		return &models.DecisionFactor{
			Label:     "training_phase",
			Weight:    models.WeightMedium,
			Vote:      models.VoteSkip,
			Reasoning: "A volume block is in progress; racing would interrupt it",
		}
	case models.PhaseRecovery:
		return &models.DecisionFactor{
			Label:     "training_phase",
			Weight:    models.WeightMedium,
			Vote:      models.VoteSkip,
			Reasoning: "The athlete is in a recovery phase; racing defeats its purpose",
		}
	case models.PhaseCompetition:
		return &models.DecisionFactor{
			Label:     "training_phase",
			Weight:    models.WeightMedium,
			Vote:      models.VoteAccept,
			Reasoning: "The competition phase is exactly when races belong",
		}
	case models.PhaseTaper:
		return &models.DecisionFactor{
			Label:     "training_phase",
			Weight:    models.WeightLow,
			Vote:      models.VoteAccept,
			Reasoning: "Tapering already; a race slots in with minor adjustment",
		}
	default:
		return nil
	}
}

func motivationFactor(motivation string, importance models.RaceImportance) *models.DecisionFactor {
	switch motivation {
	case models.MotivationLow:
		if importance == models.ImportanceC {
			return &models.DecisionFactor{
				Label:     "motivation",
				Weight:    models.WeightMedium,
				Vote:      models.VoteSkip,
				Reasoning: "Motivation is low and the race is minor; forcing it risks burnout",
			}
		}
		return &models.DecisionFactor{
			Label:     "motivation",
			Weight:    models.WeightLow,
			Vote:      models.VoteConsider,
			Reasoning: "Motivation is low; an important race may rekindle it, but watch closely",
		}
	case models.MotivationHigh:
		if importance == models.ImportanceC {
			return &models.DecisionFactor{
				Label:     "motivation",
				Weight:    models.WeightLow,
				Vote:      models.VoteAccept,
				Reasoning: "Motivation is high; a minor race is a cheap outlet",
			}
		}
		return &models.DecisionFactor{
			Label:     "motivation",
			Weight:    models.WeightMedium,
			Vote:      models.VoteAccept,
			Reasoning: "Motivation is high for an important race",
		}
	default:
		return nil
	}
}

// aggregateRaceFactors: any HIGH-weight SKIP ends the discussion. Otherwise
// SKIP votes are tallied against ACCEPT+CONSIDER votes, with the observed
// tie-break: minor races default to the training-race accept, anything
// bigger defaults to declining.
func aggregateRaceFactors(
	importance models.RaceImportance,
	factors []models.DecisionFactor,
) (models.RaceDecision, string) {
	var skips, accepts, considers int
	for _, factor := range factors {
		if factor.Weight == models.WeightHigh && factor.Vote == models.VoteSkip {
			return models.RaceNotRecommended, factor.Reasoning
		}
		switch factor.Vote {
		case models.VoteSkip:
			skips++
		case models.VoteAccept:
			accepts++
		case models.VoteConsider:
			considers++
		}
	}

	support := accepts + considers

	switch {
	case skips > support:
		return models.RaceLikelyDecline, "More factors argue against this race than for it"
	case support > skips && accepts > 0:
		if importance == models.ImportanceC {
			return models.RaceAcceptTrainingRace, "Treat it as a supported training stimulus rather than a peak effort"
		}
		return models.RaceAcceptWithTaper, "Accept, with a short taper so the race does not cost the surrounding training"
	default:
		if importance == models.ImportanceC {
			return models.RaceAcceptTrainingRace, "Nothing decisive either way; a minor race at training effort is the low-risk call"
		}
		return models.RaceLikelyDecline, "Nothing decisive supports racing at this importance level; declining is the low-risk call"
	}
}

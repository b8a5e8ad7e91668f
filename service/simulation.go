package service

import (
	"math"

	"salespoint/calendar"
	"salespoint/models"
)

// Simulate projects the day's total if the hourly pace changes by
// adjustmentPerHour for the remaining hours, and works out what it takes to hit goal
func Simulate(base, goal, adjustmentPerHour float64, remainingHours int) models.Simulation {
	if remainingHours < 0 {
		remainingHours = 0
	}
	total := math.Max(0, base+adjustmentPerHour*float64(remainingHours))

	sim := models.Simulation{
		Base:                 base,
		Goal:                 goal,
		AdjustmentPerHour:    adjustmentPerHour,
		RemainingHours:       remainingHours,
		SimulatedTotal:       total,
		SimulatedAchievement: percentOf(total, goal),
	}

	gap := goal - base
	switch {
	case remainingHours == 0:
		sim.Guide = models.SimulationGuide{Type: models.GuideFinished, Gap: gap}
	case gap <= 0:
		sim.Guide = models.SimulationGuide{Type: models.GuideSuccess, Gap: gap}
	default:
		required := math.Max(0, gap/float64(remainingHours))
		sim.Guide = models.SimulationGuide{Type: models.GuideDanger, Gap: gap, RequiredPerHour: &required}
	}
	return sim
}

// SimulateScope runs Simulate against the overall forecast or a single product's.
// An unknown product falls back to the overall scope.
func SimulateScope(summary models.DailySummary, scope models.SimulationScope, adjustmentPerHour float64) models.Simulation {
	remaining := calendar.RemainingHours(summary.LastCheckpoint)

	if !scope.IsOverall() {
		if p := summary.Product(scope.Product); p != nil {
			sim := Simulate(p.PredictedSuccesses, p.DailyGoal, adjustmentPerHour, remaining)
			sim.Scope = scope
			return sim
		}
	}
	return Simulate(summary.PredictedSuccesses, summary.DailyGoal, adjustmentPerHour, remaining)
}

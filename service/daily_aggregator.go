package service

import "salespoint/models"

// percentOf returns part/whole*100, or 0 when whole is not positive
func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

// perDay splits a monthly target across eligible days, or 0 when there are none
func perDay(target float64, days int) float64 {
	if days <= 0 {
		return 0
	}
	return target / float64(days)
}

// Summarize aggregates a day's entries into totals, rates, goals and forecasts.
// Rates are expressed in percent and every zero denominator yields 0.
func Summarize(entries []models.CheckpointEntry, settings models.TeamSettings, monthInfo models.MonthInfo) models.DailySummary {
	var s models.DailySummary
	productTotals := make(map[string]int)

	for _, e := range entries {
		s.TotalCalls += e.Calls
		s.TotalMemoAttempts += e.MemoAttempts
		s.TotalManagerAttempts += e.ManagerAttempts
		s.TotalSpeechAttempts += e.SpeechAttempts
		s.TotalActivations += e.Activations
		for name, n := range e.ProductSuccesses {
			productTotals[name] += n
			s.TotalSuccesses += n
		}
	}

	calls := float64(s.TotalCalls)
	s.MentionRate = percentOf(float64(s.TotalMemoAttempts), calls)
	s.ActiveAttemptRate = percentOf(float64(s.TotalManagerAttempts), calls)
	s.SpeechMentionRate = percentOf(float64(s.TotalSpeechAttempts), calls)
	s.ConversionRate = percentOf(float64(s.TotalSuccesses), float64(s.TotalManagerAttempts))
	s.ActivationRate = percentOf(float64(s.TotalActivations), float64(s.TotalSuccesses))

	s.LastCheckpoint = models.LatestCheckpoint(entries)
	s.CumulativeWeight = CumulativeWeight(s.LastCheckpoint, settings.Weights)

	s.DailyGoal = perDay(float64(settings.TotalProductTarget()), monthInfo.NetApplicationDays)
	s.CurrentAchievement = percentOf(float64(s.TotalSuccesses), s.DailyGoal)
	s.PredictedSuccesses = Forecast(float64(s.TotalSuccesses), s.LastCheckpoint, settings.Weights)
	s.PredictedActivations = Forecast(float64(s.TotalActivations), s.LastCheckpoint, settings.Weights)
	s.PredictedAchievement = percentOf(s.PredictedSuccesses, s.DailyGoal)

	s.DailyActivationGoal = perDay(float64(settings.CoreGoals.ActivationGoal), monthInfo.OpeningDays)
	s.CurrentActivationAchievement = percentOf(float64(s.TotalActivations), s.DailyActivationGoal)
	s.PredictedActivationAchievement = percentOf(s.PredictedActivations, s.DailyActivationGoal)

	s.Products = make([]models.ProductSummary, 0, len(settings.ProductGoals))
	for _, goal := range settings.ProductGoals {
		total := productTotals[goal.Name]
		predicted := Forecast(float64(total), s.LastCheckpoint, settings.Weights)
		daily := perDay(float64(goal.MonthlyTarget), monthInfo.NetApplicationDays)
		s.Products = append(s.Products, models.ProductSummary{
			Name:                 goal.Name,
			TotalSuccesses:       total,
			PredictedSuccesses:   predicted,
			DailyGoal:            daily,
			CurrentAchievement:   percentOf(float64(total), daily),
			PredictedAchievement: percentOf(predicted, daily),
		})
	}

	return s
}

// AvailableCheckpoints returns the reporting times that have no entry yet
func AvailableCheckpoints(entries []models.CheckpointEntry) []models.Checkpoint {
	taken := make(map[models.Checkpoint]bool, len(entries))
	for _, e := range entries {
		taken[e.ReportingTime] = true
	}
	available := make([]models.Checkpoint, 0, len(models.ReportingTimes))
	for _, c := range models.ReportingTimes {
		if !taken[c] {
			available = append(available, c)
		}
	}
	return available
}

package service

import "salespoint/models"

// NewTrend compares current against previous. With no previous value any
// increase counts as a full 100 percent.
func NewTrend(current, previous int) models.Trend {
	diff := current - previous
	var pct float64
	switch {
	case previous != 0:
		pct = float64(diff) / float64(previous) * 100
	case current > 0:
		pct = 100
	}
	return models.Trend{Current: current, Previous: previous, Diff: diff, Percent: pct}
}

// CompareSameTime sums yesterday's entries reported at or before today's
// latest checkpoint and compares them with today's totals. Returns nil when
// either day has nothing to compare.
func CompareSameTime(today, yesterday []models.CheckpointEntry) *models.DayComparison {
	cutoff := models.LatestCheckpoint(today)
	if cutoff == models.CheckpointUnselected || len(yesterday) == 0 {
		return nil
	}

	var curSuccesses, curActivations int
	for _, e := range today {
		curSuccesses += e.TotalSuccesses()
		curActivations += e.Activations
	}

	var prevSuccesses, prevActivations int
	for _, e := range yesterday {
		if e.ReportingTime > cutoff {
			continue
		}
		prevSuccesses += e.TotalSuccesses()
		prevActivations += e.Activations
	}

	return &models.DayComparison{
		Checkpoint:  cutoff,
		Successes:   NewTrend(curSuccesses, prevSuccesses),
		Activations: NewTrend(curActivations, prevActivations),
	}
}

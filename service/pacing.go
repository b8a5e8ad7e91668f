package service

import (
	"math"

	"salespoint/models"
)

// behindThreshold is the fraction of expected progress below which a track is behind
const behindThreshold = 0.95

// ClassifyPace compares an actual completion percentage with the expected one
func ClassifyPace(actualPct, expectedPct float64) models.PacingStatus {
	if math.IsNaN(actualPct) || math.IsNaN(expectedPct) || expectedPct == 0 {
		return models.PacingInsufficientData
	}
	if actualPct >= expectedPct {
		return models.PacingAhead
	}
	if actualPct < expectedPct*behindThreshold {
		return models.PacingBehind
	}
	return models.PacingOnTrack
}

// PacingTracks evaluates each monthly goal against calendar progress. Rate
// goals are paced against net-application days, activations against opening days.
func PacingTracks(summary models.DailySummary, progress models.MonthlyProgress, goals models.MonthlyCoreGoals, workdayPct, openingPct float64) []models.PacingTrack {
	track := func(name models.PacingTrackName, actual, goal, expected float64) models.PacingTrack {
		completion := percentOf(actual, goal)
		return models.PacingTrack{
			Name:             name,
			Actual:           actual,
			Goal:             goal,
			CompletionPct:    completion,
			ExpectedProgress: expected,
			Status:           ClassifyPace(completion, expected),
		}
	}

	return []models.PacingTrack{
		track(models.TrackAttemptRate, summary.MentionRate, goals.AttemptRate, workdayPct),
		track(models.TrackActiveAttemptRate, summary.ActiveAttemptRate, goals.ActiveAttemptRate, workdayPct),
		track(models.TrackSpeechMentionRate, summary.SpeechMentionRate, goals.SpeechMentionRate, workdayPct),
		track(models.TrackActivations, float64(progress.Snapshot.Activations), float64(goals.ActivationGoal), openingPct),
	}
}

package service

import (
	"math"
	"testing"

	"salespoint/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPace(t *testing.T) {
	tests := []struct {
		name     string
		actual   float64
		expected float64
		want     models.PacingStatus
	}{
		{"behind outside tolerance", 80, 100, models.PacingBehind},
		{"on track inside tolerance", 96, 100, models.PacingOnTrack},
		{"exactly at tolerance edge", 95, 100, models.PacingOnTrack},
		{"ahead", 101, 100, models.PacingAhead},
		{"equal counts as ahead", 100, 100, models.PacingAhead},
		{"no expected progress", 50, 0, models.PacingInsufficientData},
		{"actual not a number", math.NaN(), 50, models.PacingInsufficientData},
		{"expected not a number", 50, math.NaN(), models.PacingInsufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPace(tt.actual, tt.expected))
		})
	}
}

func TestPacingTracks(t *testing.T) {
	summary := models.DailySummary{MentionRate: 90, ActiveAttemptRate: 20, SpeechMentionRate: 66}
	progress := models.MonthlyProgress{Snapshot: models.MonthlyProgressSnapshot{Activations: 60}}
	goals := models.DefaultCoreGoals()

	tracks := PacingTracks(summary, progress, goals, 100, 40)

	require.Len(t, tracks, 4)
	assert.Equal(t, models.TrackAttemptRate, tracks[0].Name)
	assert.InDelta(t, 100.0, tracks[0].CompletionPct, 1e-9)
	assert.Equal(t, models.PacingAhead, tracks[0].Status)

	assert.InDelta(t, 40.0, tracks[1].CompletionPct, 1e-9)
	assert.Equal(t, models.PacingBehind, tracks[1].Status)

	// 66 / 70 = 94.28%, under the 95% band
	assert.Equal(t, models.PacingBehind, tracks[2].Status)

	assert.Equal(t, models.TrackActivations, tracks[3].Name)
	assert.InDelta(t, 50.0, tracks[3].CompletionPct, 1e-9)
	assert.Equal(t, 40.0, tracks[3].ExpectedProgress)
	assert.Equal(t, models.PacingAhead, tracks[3].Status)
}

func TestPacingTracks_ZeroGoal(t *testing.T) {
	goals := models.MonthlyCoreGoals{}

	tracks := PacingTracks(models.DailySummary{MentionRate: 50}, models.MonthlyProgress{}, goals, 0, 0)

	for _, track := range tracks {
		assert.Zero(t, track.CompletionPct)
		assert.Equal(t, models.PacingInsufficientData, track.Status)
	}
}

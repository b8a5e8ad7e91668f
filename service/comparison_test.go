package service

import (
	"testing"

	"salespoint/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrend(t *testing.T) {
	assert.Equal(t, models.Trend{Current: 15, Previous: 10, Diff: 5, Percent: 50}, NewTrend(15, 10))
	assert.Equal(t, models.Trend{Current: 5, Previous: 10, Diff: -5, Percent: -50}, NewTrend(5, 10))
	assert.Equal(t, 100.0, NewTrend(3, 0).Percent)
	assert.Equal(t, 0.0, NewTrend(0, 0).Percent)
}

func TestCompareSameTime_CutsYesterdayAtTodaysCheckpoint(t *testing.T) {
	today := []models.CheckpointEntry{
		{ReportingTime: 10, ProductSuccesses: map[string]int{"A": 2}, Activations: 1},
		{ReportingTime: 12, ProductSuccesses: map[string]int{"A": 3, "B": 1}},
	}
	yesterday := []models.CheckpointEntry{
		{ReportingTime: 10, ProductSuccesses: map[string]int{"A": 1}},
		{ReportingTime: 12, ProductSuccesses: map[string]int{"A": 3}, Activations: 2},
		{ReportingTime: 15, ProductSuccesses: map[string]int{"A": 9}, Activations: 4},
	}

	cmp := CompareSameTime(today, yesterday)

	require.NotNil(t, cmp)
	assert.Equal(t, models.Checkpoint(12), cmp.Checkpoint)
	assert.Equal(t, 6, cmp.Successes.Current)
	assert.Equal(t, 4, cmp.Successes.Previous)
	assert.Equal(t, 50.0, cmp.Successes.Percent)
	assert.Equal(t, 1, cmp.Activations.Current)
	assert.Equal(t, 2, cmp.Activations.Previous)
}

func TestCompareSameTime_NothingToCompare(t *testing.T) {
	assert.Nil(t, CompareSameTime(nil, []models.CheckpointEntry{{ReportingTime: 10}}))
	assert.Nil(t, CompareSameTime([]models.CheckpointEntry{{ReportingTime: 10}}, nil))
}

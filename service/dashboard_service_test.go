package service

import (
	"context"
	"testing"
	"time"

	"salespoint/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_GetDashboard_Today(t *testing.T) {
	ctx := context.Background()
	factory := newFakeUnitOfWorkFactory()
	clock := fixedClock(2025, time.October, 15, 11)
	today := clock.Today()

	settings := models.DefaultTeamSettings()
	settings.ProductGoals = []models.ProductGoal{{ID: 1, Name: "A", MonthlyTarget: 180}}

	record := models.NewDailyRecord(settings)
	record.Entries = []models.CheckpointEntry{
		{ReportingTime: 10, Calls: 50, MemoAttempts: 40, ProductSuccesses: map[string]int{"A": 3}, Activations: 1},
	}
	factory.repo.put(testTeam, today, record)

	yesterday := models.NewDailyRecord(settings)
	yesterday.Entries = []models.CheckpointEntry{
		{ReportingTime: 10, Calls: 40, ProductSuccesses: map[string]int{"A": 2}, Activations: 1},
		{ReportingTime: 15, Calls: 90, ProductSuccesses: map[string]int{"A": 5}, Activations: 2},
	}
	factory.repo.put(testTeam, today.AddDate(0, 0, -1), yesterday)

	service := NewDashboardService(factory, clock, 31)
	dashboard, err := service.GetDashboard(ctx, testTeam, today, DashboardOptions{})

	require.NoError(t, err)
	assert.False(t, dashboard.ReadOnly)
	assert.Equal(t, models.MonthInfo{OpeningDays: 22, NetApplicationDays: 18}, dashboard.CalculatedMonthInfo)
	assert.Equal(t, dashboard.CalculatedMonthInfo, dashboard.MonthInfo)

	// 180 / 18 net-application days
	assert.InDelta(t, 10.0, dashboard.Summary.DailyGoal, 1e-9)
	assert.Equal(t, 3, dashboard.Summary.TotalSuccesses)
	assert.InDelta(t, 80.0, dashboard.Summary.MentionRate, 1e-9)

	assert.Equal(t, models.ProvenanceComputed, dashboard.MonthlyProgress.Provenance)
	assert.Equal(t, 10, dashboard.MonthlyProgress.Snapshot.Products["A"])
	assert.Equal(t, 4, dashboard.MonthlyProgress.Snapshot.Activations)

	require.Len(t, dashboard.Pacing, 4)
	assert.Greater(t, dashboard.WorkdayProgress, 0.0)
	assert.Less(t, dashboard.WorkdayProgress, 100.0)

	require.NotNil(t, dashboard.Comparison)
	assert.Equal(t, 3, dashboard.Comparison.Successes.Current)
	assert.Equal(t, 2, dashboard.Comparison.Successes.Previous)

	assert.True(t, dashboard.Simulation.Scope.IsOverall())
	assert.NotContains(t, dashboard.AvailableTimes, models.Checkpoint(10))
	assert.Empty(t, dashboard.Warnings)
}

func TestDashboardService_GetDashboard_PastDayIsReadOnly(t *testing.T) {
	factory := newFakeUnitOfWorkFactory()
	clock := fixedClock(2025, time.October, 15, 11)
	service := NewDashboardService(factory, clock, 31)

	dashboard, err := service.GetDashboard(context.Background(), testTeam, time.Date(2025, time.September, 30, 0, 0, 0, 0, clock.Location()), DashboardOptions{})

	require.NoError(t, err)
	assert.True(t, dashboard.ReadOnly)
	assert.Empty(t, dashboard.Entries)
	assert.Nil(t, dashboard.Comparison)
	assert.Equal(t, 100.0, dashboard.WorkdayProgress)
	assert.Equal(t, 100.0, dashboard.OpeningDayProgress)
}

func TestDashboardService_GetDashboard_AppliesOverridesAndWarns(t *testing.T) {
	ctx := context.Background()
	factory := newFakeUnitOfWorkFactory()
	clock := fixedClock(2025, time.October, 15, 11)
	today := clock.Today()

	settings := models.DefaultTeamSettings()
	settings.Weights[18] = 90
	days := 20
	settings.MonthInfoOverride = &models.MonthInfoOverride{NetApplicationDays: &days}

	record := models.NewDailyRecord(settings)
	record.Entries = []models.CheckpointEntry{
		{ReportingTime: 10, Calls: 10, ProductSuccesses: map[string]int{"주력상품A": 1}, Activations: 3},
	}
	factory.repo.put(testTeam, today, record)
	factory.repo.malformed[fakeKey(testTeam, today.AddDate(0, 0, -5))] = true

	service := NewDashboardService(factory, clock, 31)
	dashboard, err := service.GetDashboard(ctx, testTeam, today, DashboardOptions{
		Scope:             models.SimulationScope{Product: "주력상품A"},
		AdjustmentPerHour: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, 20, dashboard.MonthInfo.NetApplicationDays)
	assert.Equal(t, 22, dashboard.MonthInfo.OpeningDays)
	assert.Equal(t, 18, dashboard.CalculatedMonthInfo.NetApplicationDays)
	assert.Equal(t, "주력상품A", dashboard.Simulation.Scope.Product)
	assert.Len(t, dashboard.Warnings, 3)
	assert.Equal(t, 1, dashboard.MonthlyProgress.DaysSkipped)
}

package service

import (
	"testing"

	"salespoint/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate_BehindGoal(t *testing.T) {
	sim := Simulate(20, 30, 2, 4)

	assert.Equal(t, 28.0, sim.SimulatedTotal)
	assert.InDelta(t, 28.0/30*100, sim.SimulatedAchievement, 1e-9)
	assert.Equal(t, models.GuideDanger, sim.Guide.Type)
	assert.Equal(t, 10.0, sim.Guide.Gap)
	require.NotNil(t, sim.Guide.RequiredPerHour)
	assert.Equal(t, 2.5, *sim.Guide.RequiredPerHour)
}

func TestSimulate_AlreadyAtGoal(t *testing.T) {
	sim := Simulate(35, 30, 0, 3)

	assert.Equal(t, models.GuideSuccess, sim.Guide.Type)
	assert.Equal(t, -5.0, sim.Guide.Gap)
	assert.Nil(t, sim.Guide.RequiredPerHour)
}

func TestSimulate_DayFinished(t *testing.T) {
	sim := Simulate(10, 30, 5, 0)

	assert.Equal(t, 10.0, sim.SimulatedTotal)
	assert.Equal(t, models.GuideFinished, sim.Guide.Type)
	assert.Nil(t, sim.Guide.RequiredPerHour)
}

func TestSimulate_TotalNeverNegative(t *testing.T) {
	sim := Simulate(5, 30, -10, 3)

	assert.Equal(t, 0.0, sim.SimulatedTotal)
	assert.Equal(t, 0.0, sim.SimulatedAchievement)
}

func TestSimulate_ZeroGoal(t *testing.T) {
	sim := Simulate(5, 0, 1, 2)

	assert.Equal(t, 0.0, sim.SimulatedAchievement)
	assert.Equal(t, models.GuideSuccess, sim.Guide.Type)
}

func TestSimulateScope(t *testing.T) {
	summary := models.DailySummary{
		LastCheckpoint:     14,
		PredictedSuccesses: 40,
		DailyGoal:          50,
		Products: []models.ProductSummary{
			{Name: "A", PredictedSuccesses: 12, DailyGoal: 10},
		},
	}

	overall := SimulateScope(summary, models.SimulationScope{}, 1)
	assert.Equal(t, 4, overall.RemainingHours)
	assert.Equal(t, 44.0, overall.SimulatedTotal)
	assert.True(t, overall.Scope.IsOverall())

	product := SimulateScope(summary, models.SimulationScope{Product: "A"}, 0)
	assert.Equal(t, "A", product.Scope.Product)
	assert.Equal(t, models.GuideSuccess, product.Guide.Type)

	unknown := SimulateScope(summary, models.SimulationScope{Product: "missing"}, 0)
	assert.True(t, unknown.Scope.IsOverall())
	assert.Equal(t, 40.0, unknown.Base)
}

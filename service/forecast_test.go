package service

import (
	"testing"

	"salespoint/models"

	"github.com/stretchr/testify/assert"
)

func TestForecast_NeverBelowActual(t *testing.T) {
	curve := models.DefaultWeightCurve()
	for _, c := range models.ReportingTimes {
		for _, actual := range []float64{0, 1, 7, 250} {
			assert.GreaterOrEqual(t, Forecast(actual, c, curve), actual, "checkpoint %s actual %v", c, actual)
		}
	}
}

func TestForecast_NoCheckpointReturnsActual(t *testing.T) {
	assert.Equal(t, 42.0, Forecast(42, models.CheckpointUnselected, models.DefaultWeightCurve()))
}

func TestForecast_ZeroWeightReturnsActual(t *testing.T) {
	curve := models.DefaultWeightCurve()
	curve[12] = 0
	assert.Equal(t, 9.0, Forecast(9, 12, curve))
}

func TestForecast_FinalCheckpointIsIdentity(t *testing.T) {
	assert.Equal(t, 37.0, Forecast(37, models.LastCheckpoint, models.DefaultWeightCurve()))
}

func TestForecast_ScalesByCumulativeWeight(t *testing.T) {
	curve := models.WeightCurve{10: 20, 18: 100}
	assert.InDelta(t, 10.0, Forecast(2, 10, curve), 1e-9)
}

func TestPredictionFeedback(t *testing.T) {
	assert.Equal(t, models.FeedbackGood, PredictionFeedback(100))
	assert.Equal(t, models.FeedbackGood, PredictionFeedback(132.5))
	assert.Equal(t, models.FeedbackWarning, PredictionFeedback(80))
	assert.Equal(t, models.FeedbackWarning, PredictionFeedback(99.9))
	assert.Equal(t, models.FeedbackDanger, PredictionFeedback(79.9))
	assert.Equal(t, models.FeedbackDanger, PredictionFeedback(0))
}

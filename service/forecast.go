package service

import "salespoint/models"

// CumulativeWeight returns the curve value at last, or 0 when nothing has been reported
func CumulativeWeight(last models.Checkpoint, curve models.WeightCurve) float64 {
	if last == models.CheckpointUnselected || curve == nil {
		return 0
	}
	return curve[last]
}

// Forecast extrapolates an end-of-day total from the value observed at the
// last checkpoint. With no usable weight the actual value is returned as is.
func Forecast(actual float64, last models.Checkpoint, curve models.WeightCurve) float64 {
	w := CumulativeWeight(last, curve)
	if w <= 0 {
		return actual
	}
	return actual / (w / 100)
}

// PredictionFeedback grades a predicted achievement percentage
func PredictionFeedback(predictedAchievement float64) models.FeedbackLevel {
	switch {
	case predictedAchievement >= 100:
		return models.FeedbackGood
	case predictedAchievement >= 80:
		return models.FeedbackWarning
	default:
		return models.FeedbackDanger
	}
}

package common

import "salespoint/models"

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorWarning = 0xFEE75C // Yellow
	ColorInfo    = 0x3498DB // Blue
	ColorMuted   = 0x95A5A6 // Grey
)

// UI constants
const (
	MaxButtonsPerRow = 5
	ProgressBarWidth = 10
)

// FeedbackColor picks the embed color for a prediction feedback level
func FeedbackColor(level models.FeedbackLevel) int {
	switch level {
	case models.FeedbackGood:
		return ColorSuccess
	case models.FeedbackWarning:
		return ColorWarning
	case models.FeedbackDanger:
		return ColorDanger
	default:
		return ColorMuted
	}
}

// PacingEmoji marks a pacing status in embed text
func PacingEmoji(status models.PacingStatus) string {
	switch status {
	case models.PacingAhead:
		return "🟢"
	case models.PacingOnTrack:
		return "🔵"
	case models.PacingBehind:
		return "🔴"
	default:
		return "⚪"
	}
}

package models

// PacingStatus is the result of comparing actual against expected progress
type PacingStatus string

const (
	PacingInsufficientData PacingStatus = "insufficient_data"
	PacingBehind           PacingStatus = "behind"
	PacingOnTrack          PacingStatus = "on_track"
	PacingAhead            PacingStatus = "ahead"
)

// PacingTrackName identifies one of the monthly goals being paced
type PacingTrackName string

const (
	TrackAttemptRate       PacingTrackName = "attempt_rate"
	TrackActiveAttemptRate PacingTrackName = "active_attempt_rate"
	TrackSpeechMentionRate PacingTrackName = "stt_mention_rate"
	TrackActivations       PacingTrackName = "activations"
)

// PacingTrack is one goal's completion compared against calendar progress
type PacingTrack struct {
	Name             PacingTrackName `json:"name"`
	Actual           float64         `json:"actual"`
	Goal             float64         `json:"goal"`
	CompletionPct    float64         `json:"completionPct"`
	ExpectedProgress float64         `json:"expectedProgress"`
	Status           PacingStatus    `json:"status"`
}

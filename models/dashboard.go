package models

import "time"

// Trend compares a current value against a reference value
type Trend struct {
	Current  int     `json:"current"`
	Previous int     `json:"previous"`
	Diff     int     `json:"diff"`
	Percent  float64 `json:"percent"`
}

// DayComparison holds yesterday's totals up to the same checkpoint as today
type DayComparison struct {
	Checkpoint  Checkpoint `json:"checkpoint"`
	Successes   Trend      `json:"successes"`
	Activations Trend      `json:"activations"`
}

// Dashboard is the composed view of one team on one date
type Dashboard struct {
	Team                Team              `json:"team"`
	Date                time.Time         `json:"date"`
	ReadOnly            bool              `json:"readOnly"`
	Settings            TeamSettings      `json:"settings"`
	Entries             []CheckpointEntry `json:"entries"`
	CalculatedMonthInfo MonthInfo         `json:"calculatedMonthInfo"`
	MonthInfo           MonthInfo         `json:"monthInfo"`
	Summary             DailySummary      `json:"summary"`
	Feedback            FeedbackLevel     `json:"feedback"`
	MonthlyProgress     MonthlyProgress   `json:"monthlyProgress"`
	WorkdayProgress     float64           `json:"workdayProgress"`
	OpeningDayProgress  float64           `json:"openingDayProgress"`
	Pacing              []PacingTrack     `json:"pacing"`
	Simulation          Simulation        `json:"simulation"`
	Comparison          *DayComparison    `json:"comparison,omitempty"`
	AvailableTimes      []Checkpoint      `json:"availableTimes"`
	Warnings            []string          `json:"warnings,omitempty"`
}

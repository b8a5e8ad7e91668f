package models

// ProductSummary is the per-product slice of a day's summary
type ProductSummary struct {
	Name                 string  `json:"name"`
	TotalSuccesses       int     `json:"totalSuccesses"`
	PredictedSuccesses   float64 `json:"predictedSuccesses"`
	DailyGoal            float64 `json:"dailyGoal"`
	CurrentAchievement   float64 `json:"currentAchievement"`
	PredictedAchievement float64 `json:"predictedAchievement"`
}

// DailySummary is the aggregate view of one day's entries
type DailySummary struct {
	TotalCalls           int `json:"totalCalls"`
	TotalMemoAttempts    int `json:"totalMemoAttempts"`
	TotalManagerAttempts int `json:"totalManagerAttempts"`
	TotalSpeechAttempts  int `json:"totalSttAttempts"`
	TotalSuccesses       int `json:"totalSuccesses"`
	TotalActivations     int `json:"totalActivations"`

	MentionRate       float64 `json:"mentionRate"`
	ActiveAttemptRate float64 `json:"activeAttemptRate"`
	SpeechMentionRate float64 `json:"sttMentionRate"`
	ConversionRate    float64 `json:"conversionRate"`
	ActivationRate    float64 `json:"activationRate"`

	LastCheckpoint   Checkpoint `json:"lastCheckpoint"`
	CumulativeWeight float64    `json:"cumulativeWeight"`

	DailyGoal            float64 `json:"dailyGoal"`
	CurrentAchievement   float64 `json:"currentAchievement"`
	PredictedSuccesses   float64 `json:"predictedSuccesses"`
	PredictedActivations float64 `json:"predictedActivations"`
	PredictedAchievement float64 `json:"predictedAchievement"`

	DailyActivationGoal            float64 `json:"dailyActivationGoal"`
	CurrentActivationAchievement   float64 `json:"currentActivationAchievement"`
	PredictedActivationAchievement float64 `json:"predictedActivationAchievement"`

	Products []ProductSummary `json:"products"`
}

// ActivationRateExceeds flags more activations than successes, which the
// rate formula allows but usually indicates a data entry mistake
func (s DailySummary) ActivationRateExceeds() bool {
	return s.ActivationRate > 100
}

// Product returns the summary for name, or nil if it is not tracked
func (s DailySummary) Product(name string) *ProductSummary {
	for i := range s.Products {
		if s.Products[i].Name == name {
			return &s.Products[i]
		}
	}
	return nil
}

// FeedbackLevel grades a predicted achievement percentage
type FeedbackLevel string

const (
	FeedbackGood    FeedbackLevel = "good"
	FeedbackWarning FeedbackLevel = "warning"
	FeedbackDanger  FeedbackLevel = "danger"
)

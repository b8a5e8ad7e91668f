package models

// SimulationScope selects whether a projection covers all products or one
type SimulationScope struct {
	Product string `json:"product,omitempty"`
}

// IsOverall reports whether the scope covers every product
func (s SimulationScope) IsOverall() bool {
	return s.Product == ""
}

// GuideType classifies the guidance attached to a simulation
type GuideType string

const (
	GuideSuccess  GuideType = "success"
	GuideDanger   GuideType = "danger"
	GuideFinished GuideType = "finished"
)

// SimulationGuide tells the operator what it takes to reach the goal
type SimulationGuide struct {
	Type            GuideType `json:"type"`
	Gap             float64   `json:"gap"`
	RequiredPerHour *float64  `json:"requiredPerHour,omitempty"`
}

// Simulation is a what-if projection for the rest of the day
type Simulation struct {
	Scope                SimulationScope `json:"scope"`
	Base                 float64         `json:"base"`
	Goal                 float64         `json:"goal"`
	AdjustmentPerHour    float64         `json:"adjustmentPerHour"`
	RemainingHours       int             `json:"remainingHours"`
	SimulatedTotal       float64         `json:"simulatedTotal"`
	SimulatedAchievement float64         `json:"simulatedAchievement"`
	Guide                SimulationGuide `json:"guide"`
}

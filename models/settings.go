package models

// WeightCurve maps each checkpoint to the cumulative share (percent) of the
// day's volume expected by that time
type WeightCurve map[Checkpoint]float64

// DefaultWeightCurve returns the linear curve used until a team tunes its own
func DefaultWeightCurve() WeightCurve {
	return WeightCurve{
		10: 11,
		11: 22,
		12: 33,
		13: 44,
		14: 55,
		15: 66,
		16: 77,
		17: 88,
		18: 100,
	}
}

// Clone returns an independent copy of the curve
func (w WeightCurve) Clone() WeightCurve {
	out := make(WeightCurve, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// HasAllCheckpoints reports whether every reporting time has a weight
func (w WeightCurve) HasAllCheckpoints() bool {
	for _, c := range ReportingTimes {
		if _, ok := w[c]; !ok {
			return false
		}
	}
	return true
}

// FinalWeightMismatch flags a curve whose last checkpoint is not 100%
func (w WeightCurve) FinalWeightMismatch() bool {
	return w[LastCheckpoint] != 100
}

// WeightInterval is the share of the day attributed to one hour
type WeightInterval struct {
	Checkpoint Checkpoint `json:"checkpoint"`
	Share      float64    `json:"share"`
}

// Intervals converts the cumulative curve into per-hour increments
func (w WeightCurve) Intervals() []WeightInterval {
	intervals := make([]WeightInterval, 0, len(ReportingTimes))
	prev := 0.0
	for _, c := range ReportingTimes {
		cur := w[c]
		intervals = append(intervals, WeightInterval{Checkpoint: c, Share: cur - prev})
		prev = cur
	}
	return intervals
}

// ProductGoal is a tracked product and its monthly success target
type ProductGoal struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	MonthlyTarget int    `json:"goal"`
}

// DefaultProductGoals returns the starting product list for a new team
func DefaultProductGoals() []ProductGoal {
	return []ProductGoal{
		{ID: 1, Name: "주력상품A", MonthlyTarget: 500},
		{ID: 2, Name: "프로모션B", MonthlyTarget: 200},
	}
}

// MonthlyCoreGoals holds the rate and count targets for a month
type MonthlyCoreGoals struct {
	AttemptRate       float64 `json:"attemptRate"`
	ActiveAttemptRate float64 `json:"activeAttemptRate"`
	SpeechMentionRate float64 `json:"sttMentionRate"`
	ActivationGoal    int     `json:"activationGoal"`
}

// DefaultCoreGoals returns the default monthly targets
func DefaultCoreGoals() MonthlyCoreGoals {
	return MonthlyCoreGoals{
		AttemptRate:       90,
		ActiveAttemptRate: 50,
		SpeechMentionRate: 70,
		ActivationGoal:    120,
	}
}

// MonthInfo is the number of eligible working days in a month
type MonthInfo struct {
	OpeningDays        int `json:"openingDays"`
	NetApplicationDays int `json:"netApplicationDays"`
}

// MonthInfoOverride replaces calculated day counts. A nil field keeps the calculated value.
type MonthInfoOverride struct {
	OpeningDays        *int `json:"openingDays,omitempty"`
	NetApplicationDays *int `json:"netApplicationDays,omitempty"`
}

// IsEmpty reports whether neither field is overridden
func (o *MonthInfoOverride) IsEmpty() bool {
	return o == nil || (o.OpeningDays == nil && o.NetApplicationDays == nil)
}

// Apply returns calculated with any overridden fields replaced
func (o *MonthInfoOverride) Apply(calculated MonthInfo) MonthInfo {
	if o == nil {
		return calculated
	}
	out := calculated
	if o.OpeningDays != nil {
		out.OpeningDays = *o.OpeningDays
	}
	if o.NetApplicationDays != nil {
		out.NetApplicationDays = *o.NetApplicationDays
	}
	return out
}

// TeamSettings is the configuration every aggregation call depends on
type TeamSettings struct {
	Weights           WeightCurve        `json:"weights"`
	MonthInfoOverride *MonthInfoOverride `json:"monthInfoOverride,omitempty"`
	CoreGoals         MonthlyCoreGoals   `json:"coreGoals"`
	ProductGoals      []ProductGoal      `json:"productGoals"`
}

// DefaultTeamSettings returns the settings used when nothing has been saved
func DefaultTeamSettings() TeamSettings {
	return TeamSettings{
		Weights:      DefaultWeightCurve(),
		CoreGoals:    DefaultCoreGoals(),
		ProductGoals: DefaultProductGoals(),
	}
}

// TotalProductTarget sums the monthly targets of every tracked product
func (s TeamSettings) TotalProductTarget() int {
	total := 0
	for _, p := range s.ProductGoals {
		total += p.MonthlyTarget
	}
	return total
}

// ProductNames returns tracked product names in display order
func (s TeamSettings) ProductNames() []string {
	names := make([]string, 0, len(s.ProductGoals))
	for _, p := range s.ProductGoals {
		names = append(names, p.Name)
	}
	return names
}

// HasProduct reports whether name is currently tracked
func (s TeamSettings) HasProduct(name string) bool {
	for _, p := range s.ProductGoals {
		if p.Name == name {
			return true
		}
	}
	return false
}

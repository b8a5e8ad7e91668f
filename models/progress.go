package models

// Provenance records where a monthly snapshot came from
type Provenance string

const (
	ProvenanceComputed   Provenance = "computed"
	ProvenanceOverridden Provenance = "overridden"
)

// MonthlyProgressSnapshot is the month-to-date total per product plus activations
type MonthlyProgressSnapshot struct {
	Products    map[string]int `json:"products"`
	Activations int            `json:"activations"`
}

// TotalSuccesses sums all product counts in the snapshot
func (s MonthlyProgressSnapshot) TotalSuccesses() int {
	total := 0
	for _, n := range s.Products {
		total += n
	}
	return total
}

// MonthlyProgress is a rollup result for one team and month
type MonthlyProgress struct {
	Month       YearMonth               `json:"-"`
	Snapshot    MonthlyProgressSnapshot `json:"snapshot"`
	Provenance  Provenance              `json:"provenance"`
	DaysScanned int                     `json:"daysScanned"`
	DaysSkipped int                     `json:"daysSkipped"`
}

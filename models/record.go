package models

import "sort"

// DailyRecord is everything persisted for one team on one day: the entries
// plus the settings snapshot that was in effect when they were recorded
type DailyRecord struct {
	Entries             []CheckpointEntry  `json:"entries"`
	PredictionWeights   WeightCurve        `json:"predictionWeights,omitempty"`
	MonthInfoOverrides  *MonthInfoOverride `json:"monthInfoOverrides"`
	MonthlyGoals        *MonthlyCoreGoals  `json:"monthlyGoals,omitempty"`
	MonthlyProductGoals []ProductGoal      `json:"monthlyProductGoals,omitempty"`
}

// NewDailyRecord creates an empty record carrying the given settings
func NewDailyRecord(settings TeamSettings) *DailyRecord {
	r := &DailyRecord{Entries: []CheckpointEntry{}}
	r.ApplySettings(settings)
	return r
}

// ApplySettings stores a copy of settings on the record
func (r *DailyRecord) ApplySettings(settings TeamSettings) {
	goals := settings.CoreGoals
	r.PredictionWeights = settings.Weights.Clone()
	r.MonthlyGoals = &goals
	r.MonthlyProductGoals = append([]ProductGoal(nil), settings.ProductGoals...)
	if settings.MonthInfoOverride.IsEmpty() {
		r.MonthInfoOverrides = nil
	} else {
		o := *settings.MonthInfoOverride
		r.MonthInfoOverrides = &o
	}
}

// UpsertEntry inserts entry or replaces the one with the same reporting time,
// keeping entries ordered by reporting time. Returns true when an entry was replaced.
func (r *DailyRecord) UpsertEntry(entry CheckpointEntry) bool {
	replaced := false
	for i := range r.Entries {
		if r.Entries[i].ReportingTime == entry.ReportingTime {
			r.Entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		r.Entries = append(r.Entries, entry)
	}
	SortEntries(r.Entries)
	return replaced
}

// RemoveEntry deletes the entry at checkpoint, returning false if none existed
func (r *DailyRecord) RemoveEntry(checkpoint Checkpoint) bool {
	for i := range r.Entries {
		if r.Entries[i].ReportingTime == checkpoint {
			r.Entries = append(r.Entries[:i], r.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// SortEntries orders entries by ascending reporting time
func SortEntries(entries []CheckpointEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ReportingTime < entries[j].ReportingTime
	})
}

// LatestCheckpoint returns the most recent reporting time, or CheckpointUnselected for no entries
func LatestCheckpoint(entries []CheckpointEntry) Checkpoint {
	latest := CheckpointUnselected
	for _, e := range entries {
		if e.ReportingTime > latest {
			latest = e.ReportingTime
		}
	}
	return latest
}

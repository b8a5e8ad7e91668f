package models

// CheckpointEntry is one operator report for a single reporting time
type CheckpointEntry struct {
	ReportingTime    Checkpoint     `json:"reportingTime"`
	Calls            int            `json:"calls"`
	MemoAttempts     int            `json:"memoAttempts"`
	ManagerAttempts  int            `json:"managerAttempts"`
	SpeechAttempts   int            `json:"sttAttempts"`
	ProductSuccesses map[string]int `json:"productSuccesses"`
	Activations      int            `json:"activations"`
}

// TotalSuccesses sums successes across all products in the entry
func (e CheckpointEntry) TotalSuccesses() int {
	total := 0
	for _, n := range e.ProductSuccesses {
		total += n
	}
	return total
}

// Validate checks the entry against the acceptance rules. Nothing is modified.
func (e CheckpointEntry) Validate() error {
	if !e.ReportingTime.IsValid() {
		return NewEntryError("reportingTime", "select a reporting time between 10 and 18")
	}
	if e.Calls < 0 {
		return NewEntryError("calls", "must not be negative")
	}
	if e.MemoAttempts < 0 || e.ManagerAttempts < 0 || e.SpeechAttempts < 0 {
		return NewEntryError("attempts", "must not be negative")
	}
	if e.Activations < 0 {
		return NewEntryError("activations", "must not be negative")
	}
	for name, n := range e.ProductSuccesses {
		if n < 0 {
			return NewEntryError("productSuccesses."+name, "must not be negative")
		}
	}
	remaining := e.Calls
	for _, n := range e.ProductSuccesses {
		if n > remaining {
			return NewEntryError("productSuccesses", "total successes cannot exceed calls")
		}
		remaining -= n
	}
	return nil
}

// Clone returns a deep copy so callers can mutate product counts safely
func (e CheckpointEntry) Clone() CheckpointEntry {
	out := e
	out.ProductSuccesses = make(map[string]int, len(e.ProductSuccesses))
	for k, v := range e.ProductSuccesses {
		out.ProductSuccesses[k] = v
	}
	return out
}

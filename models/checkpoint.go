package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Checkpoint is an hourly reporting slot identified by its hour of day
type Checkpoint int

// CheckpointUnselected marks an entry whose reporting time has not been chosen yet
const CheckpointUnselected Checkpoint = 0

const (
	FirstCheckpoint Checkpoint = 10
	LastCheckpoint  Checkpoint = 18
)

// ReportingTimes lists every legal checkpoint in ascending order
var ReportingTimes = []Checkpoint{10, 11, 12, 13, 14, 15, 16, 17, 18}

// IsValid reports whether c is one of the legal reporting times
func (c Checkpoint) IsValid() bool {
	return c >= FirstCheckpoint && c <= LastCheckpoint
}

func (c Checkpoint) String() string {
	if c == CheckpointUnselected {
		return "unselected"
	}
	return fmt.Sprintf("%02d:00", int(c))
}

// ParseCheckpoint accepts "14", "14시" or "14:00"
func ParseCheckpoint(s string) (Checkpoint, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "시")
	s = strings.TrimSuffix(s, ":00")
	hour, err := strconv.Atoi(s)
	if err != nil {
		return CheckpointUnselected, fmt.Errorf("invalid reporting time %q", s)
	}
	c := Checkpoint(hour)
	if !c.IsValid() {
		return CheckpointUnselected, fmt.Errorf("reporting time %d is outside %d-%d", hour, FirstCheckpoint, LastCheckpoint)
	}
	return c, nil
}

package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEntry is the root of every checkpoint entry validation failure
	ErrInvalidEntry = errors.New("invalid checkpoint entry")

	// ErrInvalidSettings is the root of every settings validation failure
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrReadOnlyDay is returned when a write targets a date other than today
	ErrReadOnlyDay = errors.New("only today's record can be modified")

	// ErrMalformedRecord is returned when a persisted payload cannot be decoded
	ErrMalformedRecord = errors.New("malformed persisted record")

	// ErrUnknownTeam is returned for a team that is not configured
	ErrUnknownTeam = errors.New("unknown team")

	// ErrNoDataReturned is returned when the AI service answered with nothing usable
	ErrNoDataReturned = errors.New("no data returned")

	// ErrAIUnavailable is returned when the AI service is not configured or unreachable
	ErrAIUnavailable = errors.New("ai service unavailable")
)

// ValidationError describes why an entry or a settings change was rejected
type ValidationError struct {
	Field  string
	Reason string
	Kind   error
}

// NewEntryError creates a validation error for a checkpoint entry
func NewEntryError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Kind: ErrInvalidEntry}
}

// NewSettingsError creates a validation error for a settings change
func NewSettingsError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Kind: ErrInvalidSettings}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidEntry) or ErrInvalidSettings
func (e *ValidationError) Unwrap() error {
	if e.Kind == nil {
		return ErrInvalidEntry
	}
	return e.Kind
}

package infrastructure

import (
	"fmt"

	"salespoint/events"
)

const subjectPrefix = "salespoint."

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeEntryRecorded:
		return subjectPrefix + "entries.recorded"
	case events.EventTypeEntryDeleted:
		return subjectPrefix + "entries.deleted"
	case events.EventTypeDayReset:
		return subjectPrefix + "entries.day_reset"
	case events.EventTypeSettingsSaved:
		return subjectPrefix + "settings.saved"
	case events.EventTypeMonthlyOverrideSaved:
		return subjectPrefix + "monthly.override_saved"
	case events.EventTypeMonthlyOverrideCleared:
		return subjectPrefix + "monthly.override_cleared"
	default:
		return fmt.Sprintf("%sunknown.%s", subjectPrefix, event.Type())
	}
}

// StreamSubjects returns the subject filters the event stream must capture
func (m *EventSubjectMapper) StreamSubjects() []string {
	return []string{subjectPrefix + ">"}
}

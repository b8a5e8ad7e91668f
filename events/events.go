package events

import (
	"context"
	"sync"

	"salespoint/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeEntryRecorded          EventType = "entry_recorded"
	EventTypeEntryDeleted           EventType = "entry_deleted"
	EventTypeDayReset               EventType = "day_reset"
	EventTypeSettingsSaved          EventType = "settings_saved"
	EventTypeMonthlyOverrideSaved   EventType = "monthly_override_saved"
	EventTypeMonthlyOverrideCleared EventType = "monthly_override_cleared"
)

// AllEventTypes lists every event type published by the services
var AllEventTypes = []EventType{
	EventTypeEntryRecorded,
	EventTypeEntryDeleted,
	EventTypeDayReset,
	EventTypeSettingsSaved,
	EventTypeMonthlyOverrideSaved,
	EventTypeMonthlyOverrideCleared,
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// EntryRecordedEvent is emitted when a checkpoint entry is stored
type EntryRecordedEvent struct {
	Team        models.Team       `json:"team"`
	Date        string            `json:"date"`
	Checkpoint  models.Checkpoint `json:"checkpoint"`
	Replaced    bool              `json:"replaced"`
	Calls       int               `json:"calls"`
	Successes   int               `json:"successes"`
	Activations int               `json:"activations"`
}

func (e EntryRecordedEvent) Type() EventType {
	return EventTypeEntryRecorded
}

// EntryDeletedEvent is emitted when a checkpoint entry is removed
type EntryDeletedEvent struct {
	Team       models.Team       `json:"team"`
	Date       string            `json:"date"`
	Checkpoint models.Checkpoint `json:"checkpoint"`
}

func (e EntryDeletedEvent) Type() EventType {
	return EventTypeEntryDeleted
}

// DayResetEvent is emitted when all of a day's entries are cleared
type DayResetEvent struct {
	Team           models.Team `json:"team"`
	Date           string      `json:"date"`
	EntriesRemoved int         `json:"entriesRemoved"`
}

func (e DayResetEvent) Type() EventType {
	return EventTypeDayReset
}

// SettingsSavedEvent is emitted when a team's settings are persisted
type SettingsSavedEvent struct {
	Team                models.Team `json:"team"`
	Date                string      `json:"date"`
	ProductCount        int         `json:"productCount"`
	FinalWeightMismatch bool        `json:"finalWeightMismatch"`
}

func (e SettingsSavedEvent) Type() EventType {
	return EventTypeSettingsSaved
}

// MonthlyOverrideSavedEvent is emitted when a manual monthly snapshot is stored
type MonthlyOverrideSavedEvent struct {
	Team        models.Team `json:"team"`
	Month       string      `json:"month"`
	Successes   int         `json:"successes"`
	Activations int         `json:"activations"`
}

func (e MonthlyOverrideSavedEvent) Type() EventType {
	return EventTypeMonthlyOverrideSaved
}

// MonthlyOverrideClearedEvent is emitted when a manual monthly snapshot is removed
type MonthlyOverrideClearedEvent struct {
	Team  models.Team `json:"team"`
	Month string      `json:"month"`
}

func (e MonthlyOverrideClearedEvent) Type() EventType {
	return EventTypeMonthlyOverrideCleared
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type on main event bus")
}

// SubscribeAll adds handler for every known event type
func (b *Bus) SubscribeAll(handler Handler) {
	for _, eventType := range AllEventTypes {
		b.Subscribe(eventType, handler)
	}
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers on main event bus")

	// Handlers run asynchronously so a slow subscriber never blocks a request
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds events raised inside a unit of work until it commits
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Adding event to transactional bus pending queue")
	b.pending = append(b.pending, e)
}

// Flush is called after a successful commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing pending events from transactional bus to main event bus")

	// Handlers outlive the request, so they get a fresh context
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events after a rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}

// Pending returns the number of events waiting for Flush
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}

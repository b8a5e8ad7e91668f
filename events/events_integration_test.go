package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"salespoint/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEventDeliveryIntegration tests the complete event flow from TransactionalBus to main Bus
func TestEventDeliveryIntegration(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan EntryRecordedEvent, 1)
	mainBus.Subscribe(EventTypeEntryRecorded, func(ctx context.Context, event Event) {
		if recorded, ok := event.(EntryRecordedEvent); ok {
			eventReceived <- recorded
		} else {
			t.Errorf("Expected EntryRecordedEvent, got %T", event)
		}
	})

	testEvent := EntryRecordedEvent{
		Team:        models.Team("team1"),
		Date:        "2025-09-10",
		Checkpoint:  14,
		Calls:       30,
		Successes:   3,
		Activations: 1,
	}

	transactionalBus.Publish(testEvent)
	assert.Equal(t, 1, transactionalBus.Pending())

	err := transactionalBus.Flush(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, transactionalBus.Pending())

	select {
	case received := <-eventReceived:
		assert.Equal(t, testEvent, received)
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not delivered")
	}
}

func TestTransactionalBus_DiscardDropsEvents(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	called := make(chan struct{}, 1)
	mainBus.Subscribe(EventTypeDayReset, func(ctx context.Context, event Event) {
		called <- struct{}{}
	})

	transactionalBus.Publish(DayResetEvent{Team: "team1", Date: "2025-09-10"})
	transactionalBus.Discard()
	require.NoError(t, transactionalBus.Flush(context.Background()))

	select {
	case <-called:
		t.Fatal("Discarded event was delivered")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_SubscribeAllAndPanicRecovery(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	seen := make(map[EventType]int)
	done := make(chan struct{}, len(AllEventTypes))

	bus.SubscribeAll(func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.SubscribeAll(func(ctx context.Context, event Event) {
		mu.Lock()
		seen[event.Type()]++
		mu.Unlock()
		done <- struct{}{}
	})

	bus.Emit(context.Background(), SettingsSavedEvent{Team: "team1"})
	bus.Emit(context.Background(), MonthlyOverrideClearedEvent{Team: "team2", Month: "2025-09"})

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Handler was not invoked")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, seen[EventTypeSettingsSaved])
	assert.Equal(t, 1, seen[EventTypeMonthlyOverrideCleared])
}

package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"salespoint/events"
	"salespoint/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectEvents subscribes to every event type and returns a function that
// waits for n events to arrive
func collectEvents(t *testing.T, bus *events.Bus) func(n int) []events.Event {
	var mu sync.Mutex
	var received []events.Event
	bus.SubscribeAll(func(ctx context.Context, e events.Event) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, e)
	})

	return func(n int) []events.Event {
		require.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(received) >= n
		}, time.Second, 10*time.Millisecond)
		mu.Lock()
		defer mu.Unlock()
		return append([]events.Event{}, received...)
	}
}

func TestMemoryUnitOfWork_CommitAppliesWritesAndFlushesEvents(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	bus := events.NewBus()
	wait := collectEvents(t, bus)
	factory := NewMemoryUnitOfWorkFactory(store, bus, "team1")

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	require.NoError(t, uow.RecordRepository().SaveDailyRecord(ctx, "team1", testDate, testutil.CreateTestDailyRecord()))
	uow.EventBus().Publish(events.DayResetEvent{Team: "team1", Date: "2025-10-15"})

	// staged writes are visible inside the unit of work only
	record, err := uow.RecordRepository().GetDailyRecord(ctx, "team1", testDate)
	require.NoError(t, err)
	assert.NotNil(t, record)
	assert.Equal(t, 0, store.Len())

	require.NoError(t, uow.Commit())
	assert.Equal(t, 1, store.Len())

	received := wait(1)
	assert.Equal(t, events.EventTypeDayReset, received[0].Type())
}

func TestMemoryUnitOfWork_RollbackDiscards(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	bus := events.NewBus()
	factory := NewMemoryUnitOfWorkFactory(store, bus, "team1")

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.RecordRepository().SaveDailyRecord(ctx, "team1", testDate, testutil.CreateTestDailyRecord()))
	uow.EventBus().Publish(events.DayResetEvent{Team: "team1"})
	require.NoError(t, uow.Rollback())

	assert.Equal(t, 0, store.Len())
	assert.Error(t, uow.Commit())
}

func TestMemoryUnitOfWork_DeleteIsStaged(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "k", "v"))

	tx := newMemoryTx(store)
	require.NoError(t, tx.Delete(ctx, "k"))

	_, ok, err := tx.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	tx.commit()
	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnitOfWork_Postgres(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus(), "team1")

	t.Run("rollback leaves nothing behind", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.RecordRepository().SaveDailyRecord(ctx, "team1", testDate, testutil.CreateTestDailyRecord()))
		require.NoError(t, uow.Rollback())

		record, err := NewRecordRepository(testDB.DB, "team1").GetDailyRecord(ctx, "team1", testDate)
		require.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("commit persists", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()
		require.NoError(t, uow.RecordRepository().SaveDailyRecord(ctx, "team1", testDate, testutil.CreateTestDailyRecord(testutil.CreateTestEntry(12, 60))))
		require.NoError(t, uow.Commit())

		record, err := NewRecordRepository(testDB.DB, "team1").GetDailyRecord(ctx, "team1", testDate)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Len(t, record.Entries, 1)
	})
}

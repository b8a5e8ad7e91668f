package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"salespoint/events"
	"salespoint/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedMonth(repo *fakeRecordRepository, loc *time.Location, days ...int) {
	for _, day := range days {
		record := models.NewDailyRecord(models.DefaultTeamSettings())
		record.Entries = []models.CheckpointEntry{{
			ReportingTime:    18,
			Calls:            10,
			ProductSuccesses: map[string]int{"A": 1, "untracked": 4},
			Activations:      1,
		}}
		repo.put(testTeam, time.Date(2025, time.October, day, 0, 0, 0, 0, loc), record)
	}
}

func TestMonthlyRollupService_Rollup_SumsDays(t *testing.T) {
	ctx := context.Background()
	factory := newFakeUnitOfWorkFactory()
	clock := fixedClock(2025, time.October, 15, 12)
	seedMonth(factory.repo, clock.Location(), 1, 2, 3)

	service := NewMonthlyRollupService(factory, clock.Location())
	month := models.YearMonth{Year: 2025, Month: time.October}
	goals := []models.ProductGoal{{ID: 1, Name: "A", MonthlyTarget: 100}, {ID: 2, Name: "B", MonthlyTarget: 10}}

	progress, err := service.Rollup(ctx, testTeam, month, goals)

	require.NoError(t, err)
	assert.Equal(t, models.ProvenanceComputed, progress.Provenance)
	assert.Equal(t, map[string]int{"A": 3, "B": 0}, progress.Snapshot.Products)
	assert.Equal(t, 3, progress.Snapshot.Activations)
	assert.Equal(t, 3, progress.DaysScanned)
	assert.Equal(t, 0, progress.DaysSkipped)
}

func TestMonthlyRollupService_Rollup_RepeatableWithoutOverride(t *testing.T) {
	ctx := context.Background()
	factory := newFakeUnitOfWorkFactory()
	clock := fixedClock(2025, time.October, 15, 12)
	seedMonth(factory.repo, clock.Location(), 1, 7, 14)
	factory.repo.malformed[fakeKey(testTeam, time.Date(2025, time.October, 9, 0, 0, 0, 0, clock.Location()))] = true

	service := NewMonthlyRollupService(factory, clock.Location())
	month := models.YearMonth{Year: 2025, Month: time.October}
	goals := []models.ProductGoal{{ID: 1, Name: "A", MonthlyTarget: 100}, {ID: 2, Name: "B", MonthlyTarget: 10}}

	first, err := service.Rollup(ctx, testTeam, month, goals)
	require.NoError(t, err)
	second, err := service.Rollup(ctx, testTeam, month, goals)
	require.NoError(t, err)

	assert.Equal(t, models.ProvenanceComputed, first.Provenance)
	assert.Equal(t, first, second)
	assert.Equal(t, map[string]int{"A": 3, "B": 0}, second.Snapshot.Products)
	assert.Equal(t, 3, second.Snapshot.Activations)
	assert.Empty(t, factory.published.events)
}

func TestMonthlyRollupService_OverrideWinsUntilCleared(t *testing.T) {
	ctx := context.Background()
	factory := newFakeUnitOfWorkFactory()
	clock := fixedClock(2025, time.October, 15, 12)
	seedMonth(factory.repo, clock.Location(), 1, 2, 3)

	service := NewMonthlyRollupService(factory, clock.Location())
	month := models.YearMonth{Year: 2025, Month: time.October}
	goals := []models.ProductGoal{{ID: 1, Name: "A", MonthlyTarget: 100}}

	err := service.Override(ctx, testTeam, month, models.MonthlyProgressSnapshot{
		Products:    map[string]int{"A": 50},
		Activations: 7,
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		progress, err := service.Rollup(ctx, testTeam, month, goals)
		require.NoError(t, err)
		assert.Equal(t, models.ProvenanceOverridden, progress.Provenance)
		assert.Equal(t, 50, progress.Snapshot.Products["A"])
		assert.Equal(t, 7, progress.Snapshot.Activations)
	}

	require.NoError(t, service.ClearOverride(ctx, testTeam, month))

	progress, err := service.Rollup(ctx, testTeam, month, goals)
	require.NoError(t, err)
	assert.Equal(t, models.ProvenanceComputed, progress.Provenance)
	assert.Equal(t, 3, progress.Snapshot.Products["A"])

	require.Len(t, factory.published.events, 2)
	assert.IsType(t, events.MonthlyOverrideSavedEvent{}, factory.published.events[0])
	assert.IsType(t, events.MonthlyOverrideClearedEvent{}, factory.published.events[1])
}

func TestMonthlyRollupService_Rollup_SkipsMalformedDays(t *testing.T) {
	ctx := context.Background()
	factory := newFakeUnitOfWorkFactory()
	clock := fixedClock(2025, time.October, 15, 12)
	seedMonth(factory.repo, clock.Location(), 1, 2)
	factory.repo.malformed[fakeKey(testTeam, time.Date(2025, time.October, 5, 0, 0, 0, 0, clock.Location()))] = true

	service := NewMonthlyRollupService(factory, clock.Location())
	progress, err := service.Rollup(ctx, testTeam, models.YearMonth{Year: 2025, Month: time.October},
		[]models.ProductGoal{{ID: 1, Name: "A"}})

	require.NoError(t, err)
	assert.Equal(t, 2, progress.Snapshot.Products["A"])
	assert.Equal(t, 1, progress.DaysSkipped)
}

func TestMonthlyRollupService_Override_RejectsNegative(t *testing.T) {
	ctx := context.Background()
	mockFactory := new(MockUnitOfWorkFactory)
	service := NewMonthlyRollupService(mockFactory, time.UTC)

	err := service.Override(ctx, testTeam, models.YearMonth{Year: 2025, Month: time.October}, models.MonthlyProgressSnapshot{
		Products: map[string]int{"A": -1},
	})

	assert.ErrorIs(t, err, models.ErrInvalidSettings)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestMonthlyRollupService_Rollup_RepositoryError(t *testing.T) {
	ctx := context.Background()
	month := models.YearMonth{Year: 2025, Month: time.October}

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockRepo := new(MockRecordRepository)
	mockUoW.SetRepositories(mockRepo, nil)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockRepo.On("GetMonthlyOverride", ctx, testTeam, month).Return(nil, nil)
	mockRepo.On("GetDailyRecord", ctx, testTeam, mock.Anything).Return(nil, errors.New("connection refused"))

	service := NewMonthlyRollupService(mockFactory, time.UTC)
	progress, err := service.Rollup(ctx, testTeam, month, nil)

	assert.Nil(t, progress)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get daily record for 2025-10-01")

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUoW.AssertNotCalled(t, "Commit")
}

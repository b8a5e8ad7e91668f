package service

import (
	"context"
	"fmt"
	"time"

	"salespoint/events"
	"salespoint/models"

	log "github.com/sirupsen/logrus"
)

// persistNotice is shown when a change was applied but could not be saved
const persistNotice = "변경 내용을 저장하지 못했습니다. 잠시 후 다시 시도해주세요."

type entryService struct {
	uowFactory   UnitOfWorkFactory
	clock        Clock
	lookbackDays int
}

// NewEntryService creates a new checkpoint entry service
func NewEntryService(uowFactory UnitOfWorkFactory, clock Clock, lookbackDays int) EntryService {
	return &entryService{
		uowFactory:   uowFactory,
		clock:        clock,
		lookbackDays: lookbackDays,
	}
}

// mutateToday loads today's record (creating it from the settings in effect
// when absent), applies change and saves it. A failed save is reported
// through EntryResult.Notice rather than as an error.
func (s *entryService) mutateToday(ctx context.Context, team models.Team, date time.Time, change func(uow UnitOfWork, record *models.DailyRecord) (bool, error)) (*EntryResult, error) {
	if !s.clock.IsToday(date) {
		return nil, models.ErrReadOnlyDay
	}
	today := s.clock.Today()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	repo := uow.RecordRepository()
	settings, record, err := loadSettings(ctx, repo, team, today, s.lookbackDays)
	if err != nil {
		return nil, err
	}
	if record == nil {
		record = models.NewDailyRecord(settings)
	}

	replaced, err := change(uow, record)
	if err != nil {
		return nil, err
	}
	result := &EntryResult{Record: record, Replaced: replaced}

	if err := repo.SaveDailyRecord(ctx, team, today, record); err != nil {
		log.WithFields(log.Fields{
			"team":  team,
			"date":  DateKey(today),
			"error": err,
		}).Error("Failed to persist daily record")
		result.Notice = persistNotice
		return result, nil
	}

	if err := uow.Commit(); err != nil {
		log.WithFields(log.Fields{
			"team":  team,
			"date":  DateKey(today),
			"error": err,
		}).Error("Failed to commit daily record")
		result.Notice = persistNotice
		return result, nil
	}

	return result, nil
}

// RecordEntry validates entry and stores it on today's record
func (s *entryService) RecordEntry(ctx context.Context, team models.Team, date time.Time, entry models.CheckpointEntry) (*EntryResult, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	entry = entry.Clone()

	result, err := s.mutateToday(ctx, team, date, func(uow UnitOfWork, record *models.DailyRecord) (bool, error) {
		replaced := record.UpsertEntry(entry)
		uow.EventBus().Publish(events.EntryRecordedEvent{
			Team:        team,
			Date:        DateKey(s.clock.Today()),
			Checkpoint:  entry.ReportingTime,
			Replaced:    replaced,
			Calls:       entry.Calls,
			Successes:   entry.TotalSuccesses(),
			Activations: entry.Activations,
		})
		return replaced, nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"team":       team,
		"checkpoint": entry.ReportingTime,
		"replaced":   result.Replaced,
		"persisted":  result.Notice == "",
	}).Info("Recorded checkpoint entry")

	return result, nil
}

// DeleteEntry removes the entry at checkpoint from today's record
func (s *entryService) DeleteEntry(ctx context.Context, team models.Team, date time.Time, checkpoint models.Checkpoint) (*EntryResult, error) {
	return s.mutateToday(ctx, team, date, func(uow UnitOfWork, record *models.DailyRecord) (bool, error) {
		if !record.RemoveEntry(checkpoint) {
			return false, models.NewEntryError("reportingTime", fmt.Sprintf("no entry at %s", checkpoint))
		}
		uow.EventBus().Publish(events.EntryDeletedEvent{
			Team:       team,
			Date:       DateKey(s.clock.Today()),
			Checkpoint: checkpoint,
		})
		return false, nil
	})
}

// ResetDay clears today's entries while keeping its settings
func (s *entryService) ResetDay(ctx context.Context, team models.Team, date time.Time) (*EntryResult, error) {
	return s.mutateToday(ctx, team, date, func(uow UnitOfWork, record *models.DailyRecord) (bool, error) {
		removed := len(record.Entries)
		record.Entries = []models.CheckpointEntry{}
		uow.EventBus().Publish(events.DayResetEvent{
			Team:           team,
			Date:           DateKey(s.clock.Today()),
			EntriesRemoved: removed,
		})
		return false, nil
	})
}

// GetEntries returns the ordered entries for any date. A missing or
// malformed record yields no entries.
func (s *entryService) GetEntries(ctx context.Context, team models.Team, date time.Time) ([]models.CheckpointEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	record, err := readRecord(ctx, uow.RecordRepository(), team, date)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return []models.CheckpointEntry{}, nil
	}

	entries := append([]models.CheckpointEntry{}, record.Entries...)
	models.SortEntries(entries)
	return entries, nil
}

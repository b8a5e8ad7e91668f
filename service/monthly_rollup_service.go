package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salespoint/calendar"
	"salespoint/events"
	"salespoint/models"

	log "github.com/sirupsen/logrus"
)

type monthlyRollupService struct {
	uowFactory UnitOfWorkFactory
	loc        *time.Location
}

// NewMonthlyRollupService creates a new monthly rollup service
func NewMonthlyRollupService(uowFactory UnitOfWorkFactory, loc *time.Location) MonthlyRollupService {
	if loc == nil {
		loc = time.UTC
	}
	return &monthlyRollupService{
		uowFactory: uowFactory,
		loc:        loc,
	}
}

// rollupMonth computes month-to-date progress from repo. An override
// snapshot wins; otherwise every day is read and summed, skipping records
// that are missing or cannot be decoded. Only successes for products in
// productGoals are counted.
func rollupMonth(ctx context.Context, repo RecordRepository, team models.Team, month models.YearMonth, productGoals []models.ProductGoal, loc *time.Location) (*models.MonthlyProgress, error) {
	override, err := repo.GetMonthlyOverride(ctx, team, month)
	switch {
	case errors.Is(err, models.ErrMalformedRecord):
		log.WithFields(log.Fields{
			"team":  team,
			"month": month.String(),
			"error": err,
		}).Warn("Ignoring malformed monthly override")
	case err != nil:
		return nil, fmt.Errorf("failed to get monthly override: %w", err)
	case override != nil:
		snapshot := *override
		if snapshot.Products == nil {
			snapshot.Products = map[string]int{}
		}
		return &models.MonthlyProgress{
			Month:      month,
			Snapshot:   snapshot,
			Provenance: models.ProvenanceOverridden,
		}, nil
	}

	progress := &models.MonthlyProgress{
		Month:      month,
		Provenance: models.ProvenanceComputed,
		Snapshot: models.MonthlyProgressSnapshot{
			Products: make(map[string]int, len(productGoals)),
		},
	}
	for _, p := range productGoals {
		progress.Snapshot.Products[p.Name] = 0
	}

	first := month.FirstDay(loc)
	days := calendar.DaysInMonth(month.Year, month.Month)
	for day := 0; day < days; day++ {
		date := first.AddDate(0, 0, day)
		record, err := repo.GetDailyRecord(ctx, team, date)
		if errors.Is(err, models.ErrMalformedRecord) {
			progress.DaysSkipped++
			log.WithFields(log.Fields{
				"team":  team,
				"date":  DateKey(date),
				"error": err,
			}).Warn("Skipping malformed daily record in monthly rollup")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get daily record for %s: %w", DateKey(date), err)
		}
		if record == nil {
			continue
		}

		progress.DaysScanned++
		for _, entry := range record.Entries {
			for name, n := range entry.ProductSuccesses {
				if _, tracked := progress.Snapshot.Products[name]; tracked {
					progress.Snapshot.Products[name] += n
				}
			}
			progress.Snapshot.Activations += entry.Activations
		}
	}

	return progress, nil
}

// Rollup returns month-to-date progress for team
func (s *monthlyRollupService) Rollup(ctx context.Context, team models.Team, month models.YearMonth, productGoals []models.ProductGoal) (*models.MonthlyProgress, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	progress, err := rollupMonth(ctx, uow.RecordRepository(), team, month, productGoals, s.loc)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"team":        team,
		"month":       month.String(),
		"provenance":  progress.Provenance,
		"daysScanned": progress.DaysScanned,
		"daysSkipped": progress.DaysSkipped,
	}).Debug("Computed monthly rollup")

	return progress, nil
}

// Override stores a manual snapshot for the month
func (s *monthlyRollupService) Override(ctx context.Context, team models.Team, month models.YearMonth, snapshot models.MonthlyProgressSnapshot) error {
	if snapshot.Activations < 0 {
		return models.NewSettingsError("activations", "must not be negative")
	}
	products := make(map[string]int, len(snapshot.Products))
	for name, n := range snapshot.Products {
		if n < 0 {
			return models.NewSettingsError("products."+name, "must not be negative")
		}
		products[name] = n
	}
	snapshot.Products = products

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.RecordRepository().SaveMonthlyOverride(ctx, team, month, &snapshot); err != nil {
		return fmt.Errorf("failed to save monthly override: %w", err)
	}

	uow.EventBus().Publish(events.MonthlyOverrideSavedEvent{
		Team:        team,
		Month:       month.String(),
		Successes:   snapshot.TotalSuccesses(),
		Activations: snapshot.Activations,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"team":        team,
		"month":       month.String(),
		"successes":   snapshot.TotalSuccesses(),
		"activations": snapshot.Activations,
	}).Info("Saved monthly override")
	return nil
}

// ClearOverride removes the manual snapshot for the month
func (s *monthlyRollupService) ClearOverride(ctx context.Context, team models.Team, month models.YearMonth) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.RecordRepository().DeleteMonthlyOverride(ctx, team, month); err != nil {
		return fmt.Errorf("failed to delete monthly override: %w", err)
	}

	uow.EventBus().Publish(events.MonthlyOverrideClearedEvent{
		Team:  team,
		Month: month.String(),
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"team":  team,
		"month": month.String(),
	}).Info("Cleared monthly override")
	return nil
}

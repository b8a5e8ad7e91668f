package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"salespoint/database"
	"salespoint/models"
)

// RecordRepository persists daily records and monthly overrides as JSON
// documents in a key/value store
type RecordRepository struct {
	store      recordStore
	legacyTeam models.Team
}

// NewRecordRepository creates a record repository over the database pool.
// Records of legacyTeam that predate team-scoped keys are still readable.
func NewRecordRepository(db *database.DB, legacyTeam models.Team) *RecordRepository {
	return &RecordRepository{store: &postgresStore{q: db.Pool}, legacyTeam: legacyTeam}
}

// NewMemoryRecordRepository creates a record repository over a memory store
func NewMemoryRecordRepository(store *MemoryStore, legacyTeam models.Team) *RecordRepository {
	return &RecordRepository{store: store, legacyTeam: legacyTeam}
}

// newRecordRepositoryWithStore creates a record repository bound to a transaction's store
func newRecordRepositoryWithStore(store recordStore, legacyTeam models.Team) *RecordRepository {
	return &RecordRepository{store: store, legacyTeam: legacyTeam}
}

// GetDailyRecord returns the record for team on date, or nil if none exists
func (r *RecordRepository) GetDailyRecord(ctx context.Context, team models.Team, date time.Time) (*models.DailyRecord, error) {
	key := DailyRecordKey(team, date)
	value, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if !ok && r.legacyTeam != "" && team == r.legacyTeam {
		key = LegacyDailyRecordKey(date)
		value, ok, err = r.store.Get(ctx, key)
		if err != nil {
			return nil, err
		}
	}
	if !ok {
		return nil, nil
	}

	return decodeDailyRecord(key, value)
}

// SaveDailyRecord replaces the record for team on date. Records are always
// written under the team-scoped key.
func (r *RecordRepository) SaveDailyRecord(ctx context.Context, team models.Team, date time.Time, record *models.DailyRecord) error {
	if record == nil {
		return fmt.Errorf("record is required")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode daily record: %w", err)
	}
	return r.store.Put(ctx, DailyRecordKey(team, date), string(data))
}

// GetMonthlyOverride returns the manual snapshot for the month, or nil if none exists
func (r *RecordRepository) GetMonthlyOverride(ctx context.Context, team models.Team, month models.YearMonth) (*models.MonthlyProgressSnapshot, error) {
	key := MonthlyOverrideKey(team, month)
	value, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var snapshot models.MonthlyProgressSnapshot
	if err := json.Unmarshal([]byte(value), &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrMalformedRecord, key, err)
	}
	if snapshot.Products == nil {
		snapshot.Products = map[string]int{}
	}
	return &snapshot, nil
}

// SaveMonthlyOverride stores a manual snapshot for the month
func (r *RecordRepository) SaveMonthlyOverride(ctx context.Context, team models.Team, month models.YearMonth, snapshot *models.MonthlyProgressSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot is required")
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode monthly override: %w", err)
	}
	return r.store.Put(ctx, MonthlyOverrideKey(team, month), string(data))
}

// DeleteMonthlyOverride removes the manual snapshot, if any
func (r *RecordRepository) DeleteMonthlyOverride(ctx context.Context, team models.Team, month models.YearMonth) error {
	return r.store.Delete(ctx, MonthlyOverrideKey(team, month))
}

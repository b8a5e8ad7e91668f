package service

import (
	"context"
	"fmt"
	"time"

	"salespoint/events"
	"salespoint/models"
)

// fakeRecordRepository keeps records in maps so tests can drive whole
// service flows without a database
type fakeRecordRepository struct {
	records   map[string]*models.DailyRecord
	malformed map[string]bool
	overrides map[string]*models.MonthlyProgressSnapshot
	saveErr   error
	saves     int
}

func newFakeRecordRepository() *fakeRecordRepository {
	return &fakeRecordRepository{
		records:   map[string]*models.DailyRecord{},
		malformed: map[string]bool{},
		overrides: map[string]*models.MonthlyProgressSnapshot{},
	}
}

func fakeKey(team models.Team, date time.Time) string {
	return fmt.Sprintf("%s-%s", team, DateKey(date))
}

func (r *fakeRecordRepository) put(team models.Team, date time.Time, record *models.DailyRecord) {
	r.records[fakeKey(team, date)] = record
}

func (r *fakeRecordRepository) GetDailyRecord(ctx context.Context, team models.Team, date time.Time) (*models.DailyRecord, error) {
	key := fakeKey(team, date)
	if r.malformed[key] {
		return nil, fmt.Errorf("%w: %s", models.ErrMalformedRecord, key)
	}
	record, ok := r.records[key]
	if !ok {
		return nil, nil
	}
	copied := *record
	copied.Entries = append([]models.CheckpointEntry{}, record.Entries...)
	return &copied, nil
}

func (r *fakeRecordRepository) SaveDailyRecord(ctx context.Context, team models.Team, date time.Time, record *models.DailyRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	copied := *record
	copied.Entries = append([]models.CheckpointEntry{}, record.Entries...)
	r.records[fakeKey(team, date)] = &copied
	return nil
}

func (r *fakeRecordRepository) GetMonthlyOverride(ctx context.Context, team models.Team, month models.YearMonth) (*models.MonthlyProgressSnapshot, error) {
	snapshot, ok := r.overrides[fmt.Sprintf("%s-%s", team, month)]
	if !ok {
		return nil, nil
	}
	copied := *snapshot
	return &copied, nil
}

func (r *fakeRecordRepository) SaveMonthlyOverride(ctx context.Context, team models.Team, month models.YearMonth, snapshot *models.MonthlyProgressSnapshot) error {
	copied := *snapshot
	r.overrides[fmt.Sprintf("%s-%s", team, month)] = &copied
	return nil
}

func (r *fakeRecordRepository) DeleteMonthlyOverride(ctx context.Context, team models.Team, month models.YearMonth) error {
	delete(r.overrides, fmt.Sprintf("%s-%s", team, month))
	return nil
}

// recordingPublisher captures published events
type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(event events.Event) {
	p.events = append(p.events, event)
}

// fakeUnitOfWork hands out the shared fake repository. Events are only
// kept once the unit of work commits.
type fakeUnitOfWork struct {
	repo      *fakeRecordRepository
	published *recordingPublisher
	pending   *recordingPublisher
	commitErr error
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	u.pending = &recordingPublisher{}
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	if u.commitErr != nil {
		return u.commitErr
	}
	u.published.events = append(u.published.events, u.pending.events...)
	u.pending.events = nil
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if u.pending != nil {
		u.pending.events = nil
	}
	return nil
}

func (u *fakeUnitOfWork) RecordRepository() RecordRepository { return u.repo }
func (u *fakeUnitOfWork) EventBus() EventPublisher           { return u.pending }

type fakeUnitOfWorkFactory struct {
	repo      *fakeRecordRepository
	published *recordingPublisher
	commitErr error
}

func newFakeUnitOfWorkFactory() *fakeUnitOfWorkFactory {
	return &fakeUnitOfWorkFactory{
		repo:      newFakeRecordRepository(),
		published: &recordingPublisher{},
	}
}

func (f *fakeUnitOfWorkFactory) Create() UnitOfWork {
	return &fakeUnitOfWork{repo: f.repo, published: f.published, commitErr: f.commitErr}
}

// fixedClock returns a clock pinned to the given instant in Seoul
func fixedClock(year int, month time.Month, day, hour int) Clock {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.FixedZone("KST", 9*60*60)
	}
	now := time.Date(year, month, day, hour, 0, 0, 0, loc)
	return NewClock(loc).WithNow(func() time.Time { return now })
}

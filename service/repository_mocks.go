package service

import (
	"context"
	"time"

	"salespoint/events"
	"salespoint/models"

	"github.com/stretchr/testify/mock"
)

// MockRecordRepository is a mock implementation of RecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) GetDailyRecord(ctx context.Context, team models.Team, date time.Time) (*models.DailyRecord, error) {
	args := m.Called(ctx, team, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyRecord), args.Error(1)
}

func (m *MockRecordRepository) SaveDailyRecord(ctx context.Context, team models.Team, date time.Time, record *models.DailyRecord) error {
	args := m.Called(ctx, team, date, record)
	return args.Error(0)
}

func (m *MockRecordRepository) GetMonthlyOverride(ctx context.Context, team models.Team, month models.YearMonth) (*models.MonthlyProgressSnapshot, error) {
	args := m.Called(ctx, team, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MonthlyProgressSnapshot), args.Error(1)
}

func (m *MockRecordRepository) SaveMonthlyOverride(ctx context.Context, team models.Team, month models.YearMonth, snapshot *models.MonthlyProgressSnapshot) error {
	args := m.Called(ctx, team, month, snapshot)
	return args.Error(0)
}

func (m *MockRecordRepository) DeleteMonthlyOverride(ctx context.Context, team models.Team, month models.YearMonth) error {
	args := m.Called(ctx, team, month)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repository
// accessors return whatever SetRepositories installed.
type MockUnitOfWork struct {
	mock.Mock
	recordRepo RecordRepository
	eventBus   EventPublisher
}

// SetRepositories installs the repository and event bus returned by the accessors
func (m *MockUnitOfWork) SetRepositories(recordRepo RecordRepository, eventBus EventPublisher) {
	m.recordRepo = recordRepo
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) RecordRepository() RecordRepository {
	return m.recordRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}

// MockTextGenerator is a mock implementation of TextGenerator
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

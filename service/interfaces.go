package service

import (
	"context"
	"time"

	"salespoint/events"
	"salespoint/models"
)

// RecordRepository defines the interface for daily record and monthly override storage
type RecordRepository interface {
	// GetDailyRecord returns the record for team on date, or nil when none exists.
	// Payloads that cannot be decoded return an error wrapping models.ErrMalformedRecord.
	GetDailyRecord(ctx context.Context, team models.Team, date time.Time) (*models.DailyRecord, error)

	// SaveDailyRecord replaces the record for team on date
	SaveDailyRecord(ctx context.Context, team models.Team, date time.Time, record *models.DailyRecord) error

	// GetMonthlyOverride returns the manual snapshot for the month, or nil when none exists
	GetMonthlyOverride(ctx context.Context, team models.Team, month models.YearMonth) (*models.MonthlyProgressSnapshot, error)

	// SaveMonthlyOverride stores a manual snapshot for the month
	SaveMonthlyOverride(ctx context.Context, team models.Team, month models.YearMonth, snapshot *models.MonthlyProgressSnapshot) error

	// DeleteMonthlyOverride removes the manual snapshot, if any
	DeleteMonthlyOverride(ctx context.Context, team models.Team, month models.YearMonth) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	RecordRepository() RecordRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// TextGenerator is the AI text collaborator
type TextGenerator interface {
	// GenerateText sends prompt to the model and returns its raw text answer
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// EntryResult is the outcome of a mutation of today's entries
type EntryResult struct {
	Record   *models.DailyRecord
	Replaced bool

	// Notice is set when the change was applied but could not be persisted
	Notice string
}

// EntryService defines the interface for checkpoint entry operations
type EntryService interface {
	// RecordEntry validates entry and adds it to the day, replacing any entry
	// with the same reporting time. Only today's record can be modified.
	RecordEntry(ctx context.Context, team models.Team, date time.Time, entry models.CheckpointEntry) (*EntryResult, error)

	// DeleteEntry removes the entry at checkpoint from today's record
	DeleteEntry(ctx context.Context, team models.Team, date time.Time, checkpoint models.Checkpoint) (*EntryResult, error)

	// ResetDay removes every entry from today's record, keeping its settings
	ResetDay(ctx context.Context, team models.Team, date time.Time) (*EntryResult, error)

	// GetEntries returns the ordered entries for any date
	GetEntries(ctx context.Context, team models.Team, date time.Time) ([]models.CheckpointEntry, error)
}

// CoreGoalKey names one of the monthly core goals
type CoreGoalKey string

const (
	CoreGoalAttemptRate       CoreGoalKey = "attemptRate"
	CoreGoalActiveAttemptRate CoreGoalKey = "activeAttemptRate"
	CoreGoalSpeechMentionRate CoreGoalKey = "sttMentionRate"
	CoreGoalActivationGoal    CoreGoalKey = "activationGoal"
)

// MonthInfoKey names one of the overridable day counts
type MonthInfoKey string

const (
	MonthInfoOpeningDays        MonthInfoKey = "openingDays"
	MonthInfoNetApplicationDays MonthInfoKey = "netApplicationDays"
)

// SettingsService owns the load and save lifecycle of a team's settings
type SettingsService interface {
	// GetSettings returns the settings in effect for team on date
	GetSettings(ctx context.Context, team models.Team, date time.Time) (*models.TeamSettings, error)

	// SaveSettings replaces today's settings for team
	SaveSettings(ctx context.Context, team models.Team, settings models.TeamSettings) (*models.TeamSettings, error)

	// ResetWeights restores the default weight curve
	ResetWeights(ctx context.Context, team models.Team) (*models.TeamSettings, error)

	// SetWeight changes the cumulative weight of a single checkpoint
	SetWeight(ctx context.Context, team models.Team, checkpoint models.Checkpoint, value float64) (*models.TeamSettings, error)

	// SetCoreGoal changes one monthly core goal. Negative values are rejected.
	SetCoreGoal(ctx context.Context, team models.Team, key CoreGoalKey, value float64) (*models.TeamSettings, error)

	// SetMonthInfoOverride overrides one day count. A negative value clears it.
	SetMonthInfoOverride(ctx context.Context, team models.Team, key MonthInfoKey, value int) (*models.TeamSettings, error)

	// AddProductGoal appends a tracked product
	AddProductGoal(ctx context.Context, team models.Team, name string, target int) (*models.TeamSettings, error)

	// UpdateProductGoal renames or retargets a tracked product
	UpdateProductGoal(ctx context.Context, team models.Team, id int64, name string, target int) (*models.TeamSettings, error)

	// RemoveProductGoal stops tracking a product
	RemoveProductGoal(ctx context.Context, team models.Team, id int64) (*models.TeamSettings, error)
}

// MonthlyRollupService defines the interface for month-to-date totals
type MonthlyRollupService interface {
	// Rollup returns the override snapshot when one exists, otherwise scans every day of the month
	Rollup(ctx context.Context, team models.Team, month models.YearMonth, productGoals []models.ProductGoal) (*models.MonthlyProgress, error)

	// Override stores a manual snapshot that takes precedence over the scan
	Override(ctx context.Context, team models.Team, month models.YearMonth, snapshot models.MonthlyProgressSnapshot) error

	// ClearOverride removes the manual snapshot so the scan applies again
	ClearOverride(ctx context.Context, team models.Team, month models.YearMonth) error
}

// DashboardOptions controls the interactive parts of a dashboard
type DashboardOptions struct {
	Scope             models.SimulationScope
	AdjustmentPerHour float64
}

// DashboardService composes every calculation for one team on one date
type DashboardService interface {
	GetDashboard(ctx context.Context, team models.Team, date time.Time, opts DashboardOptions) (*models.Dashboard, error)
}

// SmartInputService turns a free-text report into a draft entry
type SmartInputService interface {
	// ParseReport returns a validated draft. The draft is not stored.
	ParseReport(ctx context.Context, team models.Team, text string) (*models.CheckpointEntry, error)
}

// CoachingService produces short advice from a dashboard
type CoachingService interface {
	GenerateCoaching(ctx context.Context, dashboard *models.Dashboard, teamLabel string) (string, error)
}

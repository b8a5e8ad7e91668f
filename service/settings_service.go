package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"salespoint/events"
	"salespoint/models"

	log "github.com/sirupsen/logrus"
)

type settingsService struct {
	uowFactory   UnitOfWorkFactory
	clock        Clock
	lookbackDays int
}

// NewSettingsService creates a new settings service. Dates without their own
// record inherit settings from the latest record up to lookbackDays earlier.
func NewSettingsService(uowFactory UnitOfWorkFactory, clock Clock, lookbackDays int) SettingsService {
	return &settingsService{
		uowFactory:   uowFactory,
		clock:        clock,
		lookbackDays: lookbackDays,
	}
}

// settingsFromRecord extracts the settings snapshot stored on a record,
// substituting defaults for anything missing. A weight curve that lacks any
// current checkpoint is replaced wholesale by the default curve.
func settingsFromRecord(record *models.DailyRecord) models.TeamSettings {
	settings := models.DefaultTeamSettings()
	if record == nil {
		return settings
	}

	if record.PredictionWeights != nil && record.PredictionWeights.HasAllCheckpoints() {
		settings.Weights = record.PredictionWeights.Clone()
	}
	if record.MonthlyGoals != nil {
		settings.CoreGoals = *record.MonthlyGoals
	}
	if record.MonthlyProductGoals != nil {
		settings.ProductGoals = append([]models.ProductGoal{}, record.MonthlyProductGoals...)
	}
	if !record.MonthInfoOverrides.IsEmpty() {
		override := *record.MonthInfoOverrides
		settings.MonthInfoOverride = &override
	}
	return settings
}

// readRecord fetches a record, treating undecodable payloads as absent
func readRecord(ctx context.Context, repo RecordRepository, team models.Team, date time.Time) (*models.DailyRecord, error) {
	record, err := repo.GetDailyRecord(ctx, team, date)
	if errors.Is(err, models.ErrMalformedRecord) {
		log.WithFields(log.Fields{
			"team":  team,
			"date":  DateKey(date),
			"error": err,
		}).Warn("Ignoring malformed daily record")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily record: %w", err)
	}
	return record, nil
}

// loadSettings resolves the settings in effect for team on date and returns
// the date's own record alongside (nil when it has none)
func loadSettings(ctx context.Context, repo RecordRepository, team models.Team, date time.Time, lookbackDays int) (models.TeamSettings, *models.DailyRecord, error) {
	record, err := readRecord(ctx, repo, team, date)
	if err != nil {
		return models.TeamSettings{}, nil, err
	}
	if record != nil {
		return settingsFromRecord(record), record, nil
	}

	for i := 1; i <= lookbackDays; i++ {
		previous, err := readRecord(ctx, repo, team, date.AddDate(0, 0, -i))
		if err != nil {
			return models.TeamSettings{}, nil, err
		}
		if previous != nil {
			log.WithFields(log.Fields{
				"team":     team,
				"date":     DateKey(date),
				"fromDate": DateKey(date.AddDate(0, 0, -i)),
			}).Debug("Carrying settings forward from earlier record")
			return settingsFromRecord(previous), nil, nil
		}
	}

	return models.DefaultTeamSettings(), nil, nil
}

// ValidateSettings checks a complete settings object before it is saved
func ValidateSettings(settings models.TeamSettings) error {
	if !settings.Weights.HasAllCheckpoints() {
		return models.NewSettingsError("weights", "every reporting time needs a weight")
	}
	for c, w := range settings.Weights {
		if w < 0 {
			return models.NewSettingsError("weights."+c.String(), "must not be negative")
		}
	}

	goals := settings.CoreGoals
	if goals.AttemptRate < 0 || goals.ActiveAttemptRate < 0 || goals.SpeechMentionRate < 0 || goals.ActivationGoal < 0 {
		return models.NewSettingsError("coreGoals", "must not be negative")
	}

	if o := settings.MonthInfoOverride; o != nil {
		if (o.OpeningDays != nil && *o.OpeningDays < 0) || (o.NetApplicationDays != nil && *o.NetApplicationDays < 0) {
			return models.NewSettingsError("monthInfoOverride", "must not be negative")
		}
	}

	seen := make(map[string]bool, len(settings.ProductGoals))
	for _, p := range settings.ProductGoals {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return models.NewSettingsError("productGoals", "product name is required")
		}
		if seen[name] {
			return models.NewSettingsError("productGoals", fmt.Sprintf("duplicate product %q", name))
		}
		if p.MonthlyTarget < 0 {
			return models.NewSettingsError("productGoals."+name, "target must not be negative")
		}
		seen[name] = true
	}
	return nil
}

// GetSettings returns the settings in effect for team on date
func (s *settingsService) GetSettings(ctx context.Context, team models.Team, date time.Time) (*models.TeamSettings, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	settings, _, err := loadSettings(ctx, uow.RecordRepository(), team, date, s.lookbackDays)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// update loads today's settings, applies mutate and persists the result on today's record
func (s *settingsService) update(ctx context.Context, team models.Team, mutate func(*models.TeamSettings) error) (*models.TeamSettings, error) {
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

	if err := mutate(&settings); err != nil {
		return nil, err
	}
	if settings.MonthInfoOverride.IsEmpty() {
		settings.MonthInfoOverride = nil
	}
	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}

	if record == nil {
		record = models.NewDailyRecord(settings)
	} else {
		record.ApplySettings(settings)
	}

	if err := repo.SaveDailyRecord(ctx, team, today, record); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	uow.EventBus().Publish(events.SettingsSavedEvent{
		Team:                team,
		Date:                DateKey(today),
		ProductCount:        len(settings.ProductGoals),
		FinalWeightMismatch: settings.Weights.FinalWeightMismatch(),
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"team":     team,
		"date":     DateKey(today),
		"products": len(settings.ProductGoals),
	}).Info("Saved team settings")

	return &settings, nil
}

// SaveSettings replaces today's settings for team
func (s *settingsService) SaveSettings(ctx context.Context, team models.Team, settings models.TeamSettings) (*models.TeamSettings, error) {
	return s.update(ctx, team, func(current *models.TeamSettings) error {
		next := settings
		next.Weights = settings.Weights.Clone()
		next.ProductGoals = append([]models.ProductGoal{}, settings.ProductGoals...)
		for i := range next.ProductGoals {
			next.ProductGoals[i].Name = strings.TrimSpace(next.ProductGoals[i].Name)
		}
		*current = next
		return nil
	})
}

// ResetWeights restores the default weight curve
func (s *settingsService) ResetWeights(ctx context.Context, team models.Team) (*models.TeamSettings, error) {
	return s.update(ctx, team, func(current *models.TeamSettings) error {
		current.Weights = models.DefaultWeightCurve()
		return nil
	})
}

// SetWeight changes the cumulative weight of a single checkpoint
func (s *settingsService) SetWeight(ctx context.Context, team models.Team, checkpoint models.Checkpoint, value float64) (*models.TeamSettings, error) {
	if !checkpoint.IsValid() {
		return nil, models.NewSettingsError("weights", fmt.Sprintf("unknown reporting time %d", checkpoint))
	}
	return s.update(ctx, team, func(current *models.TeamSettings) error {
		current.Weights[checkpoint] = value
		return nil
	})
}

// SetCoreGoal changes one monthly core goal
func (s *settingsService) SetCoreGoal(ctx context.Context, team models.Team, key CoreGoalKey, value float64) (*models.TeamSettings, error) {
	if value < 0 {
		return nil, models.NewSettingsError(string(key), "must not be negative")
	}
	return s.update(ctx, team, func(current *models.TeamSettings) error {
		switch key {
		case CoreGoalAttemptRate:
			current.CoreGoals.AttemptRate = value
		case CoreGoalActiveAttemptRate:
			current.CoreGoals.ActiveAttemptRate = value
		case CoreGoalSpeechMentionRate:
			current.CoreGoals.SpeechMentionRate = value
		case CoreGoalActivationGoal:
			current.CoreGoals.ActivationGoal = int(value)
		default:
			return models.NewSettingsError(string(key), "unknown goal")
		}
		return nil
	})
}

// SetMonthInfoOverride overrides one day count; a negative value clears it
func (s *settingsService) SetMonthInfoOverride(ctx context.Context, team models.Team, key MonthInfoKey, value int) (*models.TeamSettings, error) {
	return s.update(ctx, team, func(current *models.TeamSettings) error {
		override := models.MonthInfoOverride{}
		if current.MonthInfoOverride != nil {
			override = *current.MonthInfoOverride
		}

		var v *int
		if value >= 0 {
			v = &value
		}

		switch key {
		case MonthInfoOpeningDays:
			override.OpeningDays = v
		case MonthInfoNetApplicationDays:
			override.NetApplicationDays = v
		default:
			return models.NewSettingsError(string(key), "unknown day count")
		}

		current.MonthInfoOverride = &override
		return nil
	})
}

// AddProductGoal appends a tracked product
func (s *settingsService) AddProductGoal(ctx context.Context, team models.Team, name string, target int) (*models.TeamSettings, error) {
	return s.update(ctx, team, func(current *models.TeamSettings) error {
		var nextID int64 = 1
		for _, p := range current.ProductGoals {
			if p.ID >= nextID {
				nextID = p.ID + 1
			}
		}
		current.ProductGoals = append(current.ProductGoals, models.ProductGoal{
			ID:            nextID,
			Name:          strings.TrimSpace(name),
			MonthlyTarget: target,
		})
		return nil
	})
}

// UpdateProductGoal renames or retargets a tracked product. Successes already
// recorded under the old name stop counting toward the monthly rollup.
func (s *settingsService) UpdateProductGoal(ctx context.Context, team models.Team, id int64, name string, target int) (*models.TeamSettings, error) {
	return s.update(ctx, team, func(current *models.TeamSettings) error {
		for i := range current.ProductGoals {
			if current.ProductGoals[i].ID == id {
				current.ProductGoals[i].Name = strings.TrimSpace(name)
				current.ProductGoals[i].MonthlyTarget = target
				return nil
			}
		}
		return models.NewSettingsError("productGoals", fmt.Sprintf("no product with id %d", id))
	})
}

// RemoveProductGoal stops tracking a product
func (s *settingsService) RemoveProductGoal(ctx context.Context, team models.Team, id int64) (*models.TeamSettings, error) {
	return s.update(ctx, team, func(current *models.TeamSettings) error {
		for i := range current.ProductGoals {
			if current.ProductGoals[i].ID == id {
				current.ProductGoals = append(current.ProductGoals[:i], current.ProductGoals[i+1:]...)
				return nil
			}
		}
		return models.NewSettingsError("productGoals", fmt.Sprintf("no product with id %d", id))
	})
}

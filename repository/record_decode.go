package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"salespoint/models"

	log "github.com/sirupsen/logrus"
)

// Bounds for numbers read back from a stored record. Product ids may be
// millisecond timestamps.
const (
	maxStoredCount = math.MaxInt32
	maxStoredID    = 1 << 53
)

// looseNumber accepts a JSON number, a numeric string or null. Form inputs
// were historically saved as strings, so "500" and 500 read the same.
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	var f float64
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", s)
		}
		f = parsed
	} else if err := json.Unmarshal(data, &f); err != nil {
		return err
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("not a finite number")
	}
	*n = looseNumber(f)
	return nil
}

// count converts n to a whole count, failing outside ±maxStoredCount
func (n looseNumber) count() (int, error) {
	f := math.Round(float64(n))
	if math.Abs(f) > maxStoredCount {
		return 0, fmt.Errorf("count %v out of range", float64(n))
	}
	return int(f), nil
}

type storedDailyRecord struct {
	Entries             json.RawMessage `json:"entries"`
	PredictionWeights   json.RawMessage `json:"predictionWeights"`
	MonthInfoOverrides  json.RawMessage `json:"monthInfoOverrides"`
	MonthlyGoals        json.RawMessage `json:"monthlyGoals"`
	MonthlyProductGoals json.RawMessage `json:"monthlyProductGoals"`
}

type storedEntry struct {
	ReportingTime    looseNumber            `json:"reportingTime"`
	Calls            looseNumber            `json:"calls"`
	MemoAttempts     looseNumber            `json:"memoAttempts"`
	ManagerAttempts  looseNumber            `json:"managerAttempts"`
	SpeechAttempts   looseNumber            `json:"sttAttempts"`
	ProductSuccesses map[string]looseNumber `json:"productSuccesses"`
	Activations      looseNumber            `json:"activations"`
}

type storedCoreGoals struct {
	AttemptRate       looseNumber `json:"attemptRate"`
	ActiveAttemptRate looseNumber `json:"activeAttemptRate"`
	SpeechMentionRate looseNumber `json:"sttMentionRate"`
	ActivationGoal    looseNumber `json:"activationGoal"`
}

type storedMonthInfoOverride struct {
	OpeningDays        *looseNumber `json:"openingDays"`
	NetApplicationDays *looseNumber `json:"netApplicationDays"`
}

type storedProductGoal struct {
	ID   looseNumber `json:"id"`
	Name string      `json:"name"`
	Goal looseNumber `json:"goal"`
}

func isAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// decodeDailyRecord parses a stored record part by part. Only a document
// that is not a JSON object is malformed; any other broken part falls back
// to its default on its own. Entries that cannot be decoded or carry an
// unknown reporting time are dropped individually.
func decodeDailyRecord(key, value string) (*models.DailyRecord, error) {
	var stored storedDailyRecord
	if err := json.Unmarshal([]byte(value), &stored); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrMalformedRecord, key, err)
	}

	fields := log.Fields{"key": key}
	record := &models.DailyRecord{}

	entries, err := decodeEntries(stored.Entries, fields)
	if err != nil {
		log.WithFields(fields).WithError(err).Warn("Ignoring undecodable entries")
		entries = []models.CheckpointEntry{}
	}
	record.Entries = entries

	if record.PredictionWeights, err = decodeWeights(stored.PredictionWeights); err != nil {
		log.WithFields(fields).WithError(err).Warn("Ignoring undecodable prediction weights")
	}
	if record.MonthlyGoals, err = decodeCoreGoals(stored.MonthlyGoals); err != nil {
		log.WithFields(fields).WithError(err).Warn("Ignoring undecodable monthly goals")
	}
	if record.MonthInfoOverrides, err = decodeMonthInfoOverride(stored.MonthInfoOverrides); err != nil {
		log.WithFields(fields).WithError(err).Warn("Ignoring undecodable month info overrides")
	}
	if record.MonthlyProductGoals, err = decodeProductGoals(stored.MonthlyProductGoals); err != nil {
		log.WithFields(fields).WithError(err).Warn("Ignoring undecodable product goals")
	}

	return record, nil
}

func decodeEntries(raw json.RawMessage, fields log.Fields) ([]models.CheckpointEntry, error) {
	if isAbsent(raw) {
		return []models.CheckpointEntry{}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}

	entries := make([]models.CheckpointEntry, 0, len(items))
	for i, item := range items {
		entry, err := decodeEntry(item)
		if err != nil {
			log.WithFields(fields).WithFields(log.Fields{
				"index": i,
				"error": err,
			}).Warn("Dropping undecodable entry")
			continue
		}
		entries = append(entries, entry)
	}
	models.SortEntries(entries)
	return entries, nil
}

func decodeEntry(raw json.RawMessage) (models.CheckpointEntry, error) {
	var stored storedEntry
	if err := json.Unmarshal(raw, &stored); err != nil {
		return models.CheckpointEntry{}, err
	}

	hour, err := stored.ReportingTime.count()
	if err != nil {
		return models.CheckpointEntry{}, err
	}
	entry := models.CheckpointEntry{
		ReportingTime:    models.Checkpoint(hour),
		ProductSuccesses: make(map[string]int, len(stored.ProductSuccesses)),
	}
	if !entry.ReportingTime.IsValid() {
		return models.CheckpointEntry{}, fmt.Errorf("unknown reporting time %d", hour)
	}

	counts := []struct {
		src looseNumber
		dst *int
	}{
		{stored.Calls, &entry.Calls},
		{stored.MemoAttempts, &entry.MemoAttempts},
		{stored.ManagerAttempts, &entry.ManagerAttempts},
		{stored.SpeechAttempts, &entry.SpeechAttempts},
		{stored.Activations, &entry.Activations},
	}
	for _, c := range counts {
		if *c.dst, err = c.src.count(); err != nil {
			return models.CheckpointEntry{}, err
		}
	}
	for name, n := range stored.ProductSuccesses {
		if entry.ProductSuccesses[name], err = n.count(); err != nil {
			return models.CheckpointEntry{}, fmt.Errorf("product %q: %w", name, err)
		}
	}
	return entry, nil
}

// decodeWeights reads the curve keyed by hour. Any bad key or value drops
// the whole curve so the default applies.
func decodeWeights(raw json.RawMessage) (models.WeightCurve, error) {
	if isAbsent(raw) {
		return nil, nil
	}
	var stored map[string]looseNumber
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}
	weights := make(models.WeightCurve, len(stored))
	for k, v := range stored {
		hour, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("weight key %q is not an hour", k)
		}
		weights[models.Checkpoint(hour)] = float64(v)
	}
	return weights, nil
}

func decodeCoreGoals(raw json.RawMessage) (*models.MonthlyCoreGoals, error) {
	if isAbsent(raw) {
		return nil, nil
	}
	var stored storedCoreGoals
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}
	activations, err := stored.ActivationGoal.count()
	if err != nil {
		return nil, err
	}
	return &models.MonthlyCoreGoals{
		AttemptRate:       float64(stored.AttemptRate),
		ActiveAttemptRate: float64(stored.ActiveAttemptRate),
		SpeechMentionRate: float64(stored.SpeechMentionRate),
		ActivationGoal:    activations,
	}, nil
}

func decodeMonthInfoOverride(raw json.RawMessage) (*models.MonthInfoOverride, error) {
	if isAbsent(raw) {
		return nil, nil
	}
	var stored storedMonthInfoOverride
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}

	override := &models.MonthInfoOverride{}
	for _, f := range []struct {
		src *looseNumber
		dst **int
	}{
		{stored.OpeningDays, &override.OpeningDays},
		{stored.NetApplicationDays, &override.NetApplicationDays},
	} {
		if f.src == nil {
			continue
		}
		days, err := f.src.count()
		if err != nil {
			return nil, err
		}
		*f.dst = &days
	}
	if override.IsEmpty() {
		return nil, nil
	}
	return override, nil
}

func decodeProductGoals(raw json.RawMessage) ([]models.ProductGoal, error) {
	if isAbsent(raw) {
		return nil, nil
	}
	var stored []storedProductGoal
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}

	goals := make([]models.ProductGoal, 0, len(stored))
	for _, p := range stored {
		target, err := p.Goal.count()
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", p.Name, err)
		}
		id := math.Round(float64(p.ID))
		if math.Abs(id) > maxStoredID {
			return nil, fmt.Errorf("product %q: id %v out of range", p.Name, float64(p.ID))
		}
		goals = append(goals, models.ProductGoal{
			ID:            int64(id),
			Name:          p.Name,
			MonthlyTarget: target,
		})
	}
	return goals, nil
}

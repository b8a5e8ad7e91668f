package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"salespoint/models"

	log "github.com/sirupsen/logrus"
)

type smartInputService struct {
	uowFactory   UnitOfWorkFactory
	clock        Clock
	lookbackDays int
	generator    TextGenerator
}

// NewSmartInputService creates a new smart input service. A nil generator
// leaves the service in place but every parse fails with models.ErrAIUnavailable.
func NewSmartInputService(uowFactory UnitOfWorkFactory, clock Clock, lookbackDays int, generator TextGenerator) SmartInputService {
	return &smartInputService{
		uowFactory:   uowFactory,
		clock:        clock,
		lookbackDays: lookbackDays,
		generator:    generator,
	}
}

// ParseReport asks the text generator to extract an entry from a free-text
// report. The draft is sanitized against today's tracked products.
func (s *smartInputService) ParseReport(ctx context.Context, team models.Team, text string) (*models.CheckpointEntry, error) {
	if s.generator == nil {
		return nil, models.ErrAIUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return nil, models.NewEntryError("text", "report text is required")
	}

	products, err := s.productNames(ctx, team)
	if err != nil {
		return nil, err
	}

	answer, err := s.generator.GenerateText(ctx, buildExtractionPrompt(text, products))
	if err != nil {
		log.WithFields(log.Fields{
			"team":  team,
			"error": err,
		}).Error("Text generator failed to parse report")
		return nil, fmt.Errorf("%w: %v", models.ErrAIUnavailable, err)
	}

	entry, err := parseExtraction(answer, products)
	if err != nil {
		log.WithFields(log.Fields{
			"team":   team,
			"answer": answer,
			"error":  err,
		}).Warn("Could not decode parsed report")
		return nil, err
	}

	log.WithFields(log.Fields{
		"team":          team,
		"reportingTime": entry.ReportingTime,
		"calls":         entry.Calls,
	}).Debug("Parsed free-text report")
	return entry, nil
}

func (s *smartInputService) productNames(ctx context.Context, team models.Team) ([]string, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	settings, _, err := loadSettings(ctx, uow.RecordRepository(), team, s.clock.Today(), s.lookbackDays)
	if err != nil {
		return nil, err
	}
	return settings.ProductNames(), nil
}

func buildExtractionPrompt(text string, products []string) string {
	example := "상품명"
	if len(products) > 0 {
		example = products[0]
	}

	var b strings.Builder
	b.WriteString("Extract call center metrics from the following text and return ONLY a JSON object.\n\n")
	fmt.Fprintf(&b, "Text: %q\n\n", text)
	b.WriteString("Required JSON Format:\n{\n")
	b.WriteString(`  "reportingTime": number (extract 10, 11, 12, 13, 14, 15, 16, 17 or 18 from context),` + "\n")
	b.WriteString(`  "calls": number,` + "\n")
	b.WriteString(`  "memoAttempts": number (may be called "메모", "시도"),` + "\n")
	b.WriteString(`  "managerAttempts": number (may be called "확인", "관리자"),` + "\n")
	b.WriteString(`  "sttAttempts": number (may be called "STT", "감지"),` + "\n")
	b.WriteString(`  "activations": number (may be called "개통"),` + "\n")
	fmt.Fprintf(&b, "  \"productSuccesses\": {\n    %q: number,\n    ... other products matched from text\n  }\n}\n\n", example)
	fmt.Fprintf(&b, "Available Product Names for matching: %s.\n", strings.Join(products, ", "))
	b.WriteString("If a value is missing, use 0.\nReturn ONLY the JSON.\n")
	return b.String()
}

// stripCodeFence removes markdown json fences the model tends to add
func stripCodeFence(answer string) string {
	answer = strings.ReplaceAll(answer, "```json", "")
	answer = strings.ReplaceAll(answer, "```", "")
	return strings.TrimSpace(answer)
}

// parseExtraction decodes a model answer into an entry. Missing, negative or
// non-numeric counts become 0, an unknown reporting time becomes unselected
// and products outside the tracked list are dropped.
func parseExtraction(answer string, products []string) (*models.CheckpointEntry, error) {
	cleaned := stripCodeFence(answer)
	if cleaned == "" {
		return nil, models.ErrNoDataReturned
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrNoDataReturned, err)
	}

	entry := &models.CheckpointEntry{
		Calls:            toCount(raw["calls"]),
		MemoAttempts:     toCount(raw["memoAttempts"]),
		ManagerAttempts:  toCount(raw["managerAttempts"]),
		SpeechAttempts:   toCount(raw["sttAttempts"]),
		Activations:      toCount(raw["activations"]),
		ProductSuccesses: make(map[string]int, len(products)),
	}

	checkpoint := models.Checkpoint(toCount(raw["reportingTime"]))
	if checkpoint.IsValid() {
		entry.ReportingTime = checkpoint
	}

	successes, _ := raw["productSuccesses"].(map[string]any)
	for _, name := range products {
		entry.ProductSuccesses[name] = toCount(successes[name])
	}

	return entry, nil
}

// maxParsedCount bounds any count read from a generated answer
const maxParsedCount = math.MaxInt32

// toCount coerces a loosely typed JSON value to a non-negative integer.
// Values that are not finite or fall outside 0..maxParsedCount become 0.
func toCount(v any) int {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	f = math.Round(f)
	if math.IsNaN(f) || f < 0 || f > maxParsedCount {
		return 0
	}
	return int(f)
}

// IsAIFailure reports whether err came from the text generator path rather
// than from storage
func IsAIFailure(err error) bool {
	return errors.Is(err, models.ErrAIUnavailable) || errors.Is(err, models.ErrNoDataReturned)
}

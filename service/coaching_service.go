package service

import (
	"context"
	"fmt"
	"strings"

	"salespoint/models"

	log "github.com/sirupsen/logrus"
)

type coachingService struct {
	generator TextGenerator
	clock     Clock
}

// NewCoachingService creates a new coaching service
func NewCoachingService(generator TextGenerator, clock Clock) CoachingService {
	return &coachingService{
		generator: generator,
		clock:     clock,
	}
}

// GenerateCoaching asks the text generator for a short piece of advice on
// the dashboard's numbers
func (s *coachingService) GenerateCoaching(ctx context.Context, dashboard *models.Dashboard, teamLabel string) (string, error) {
	if s.generator == nil {
		return "", models.ErrAIUnavailable
	}
	if dashboard == nil {
		return "", fmt.Errorf("dashboard is required")
	}

	answer, err := s.generator.GenerateText(ctx, buildCoachingPrompt(dashboard, teamLabel, s.clock.Now().Hour()))
	if err != nil {
		log.WithFields(log.Fields{
			"team":  dashboard.Team,
			"error": err,
		}).Error("Text generator failed to produce coaching")
		return "", fmt.Errorf("%w: %v", models.ErrAIUnavailable, err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", models.ErrNoDataReturned
	}
	return answer, nil
}

func buildCoachingPrompt(dashboard *models.Dashboard, teamLabel string, hour int) string {
	summary := dashboard.Summary
	goals := dashboard.Settings.CoreGoals

	var b strings.Builder
	b.WriteString("You are an expert sales performance coach for a call center team.\n")
	b.WriteString("Analyze the following daily performance data and provide a concise, motivating, and strategic 2-sentence advice in Korean.\n\n")
	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "- Team: %s\n", teamLabel)
	fmt.Fprintf(&b, "- Time Now: %d시\n", hour)
	fmt.Fprintf(&b, "- Goal: %.1f successes\n", summary.DailyGoal)
	fmt.Fprintf(&b, "- Current Successes: %d\n", summary.TotalSuccesses)
	fmt.Fprintf(&b, "- Predicted Successes: %.1f\n", summary.PredictedSuccesses)
	fmt.Fprintf(&b, "- Mention Rate: %.1f%% (Goal: %.0f%%)\n", summary.MentionRate, goals.AttemptRate)
	fmt.Fprintf(&b, "- Activation Rate: %.1f%%\n\n", summary.ActivationRate)

	b.WriteString("Product Breakdown:\n")
	for _, p := range dashboard.Settings.ProductGoals {
		ps := summary.Product(p.Name)
		if ps == nil {
			continue
		}
		fmt.Fprintf(&b, "- %s: %d successes (Goal: %.1f)\n", p.Name, ps.TotalSuccesses, ps.DailyGoal)
	}

	b.WriteString("\nIf behind goal, suggest specific actions (e.g., focus on X product, improve mention rate).\n")
	b.WriteString("If ahead, encourage consistency.\n")
	b.WriteString("Keep it under 150 characters. Use emojis.\n")
	return b.String()
}

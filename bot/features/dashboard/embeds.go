package dashboard

import (
	"fmt"
	"strings"
	"time"

	"salespoint/bot/common"
	"salespoint/models"
	"salespoint/service"

	"github.com/bwmarrin/discordgo"
)

var trackLabels = map[models.PacingTrackName]string{
	models.TrackAttemptRate:       "시도율",
	models.TrackActiveAttemptRate: "적극 시도율",
	models.TrackSpeechMentionRate: "STT 언급률",
	models.TrackActivations:       "개통",
}

var feedbackLabels = map[models.FeedbackLevel]string{
	models.FeedbackGood:    "목표 달성 예상 👍",
	models.FeedbackWarning: "조금 더 힘내요 💪",
	models.FeedbackDanger:  "목표 미달 위험 🚨",
}

// BuildDashboardEmbed summarizes a dashboard for a channel
func BuildDashboardEmbed(teamLabel string, d *models.Dashboard) *discordgo.MessageEmbed {
	summary := d.Summary

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("📊 %s 대시보드 · %s", teamLabel, service.DateKey(d.Date)),
		Color:     common.FeedbackColor(d.Feedback),
		Timestamp: time.Now().Format(time.RFC3339),
		Fields:    []*discordgo.MessageEmbedField{},
	}

	var description []string
	if d.ReadOnly {
		description = append(description, "🔒 지난 날짜 (읽기 전용)")
	}
	if label, ok := feedbackLabels[d.Feedback]; ok && len(d.Entries) > 0 {
		description = append(description, label)
	}
	for _, w := range d.Warnings {
		description = append(description, "⚠️ "+w)
	}
	embed.Description = strings.Join(description, "\n")

	checkpoint := "-"
	if summary.LastCheckpoint.IsValid() {
		checkpoint = summary.LastCheckpoint.String()
	}

	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{
			Name: "🎯 오늘 성공",
			Value: fmt.Sprintf("**%d** / %s (%s)\n%s\n예상 %s건 · 예상 달성률 %s",
				summary.TotalSuccesses, common.FormatDecimal(summary.DailyGoal), common.FormatPercent(summary.CurrentAchievement),
				common.ProgressBar(summary.CurrentAchievement, common.ProgressBarWidth),
				common.FormatDecimal(summary.PredictedSuccesses), common.FormatPercent(summary.PredictedAchievement)),
		},
		&discordgo.MessageEmbedField{
			Name: "📞 활동",
			Value: fmt.Sprintf("콜 %s · 기준 %s (가중치 %s)\n시도율 %s · 적극 %s · STT %s\n전환율 %s · 개통률 %s",
				common.FormatCount(int64(summary.TotalCalls)), checkpoint, common.FormatPercent(summary.CumulativeWeight),
				common.FormatPercent(summary.MentionRate), common.FormatPercent(summary.ActiveAttemptRate), common.FormatPercent(summary.SpeechMentionRate),
				common.FormatPercent(summary.ConversionRate), common.FormatPercent(summary.ActivationRate)),
			Inline: true,
		},
		&discordgo.MessageEmbedField{
			Name: "📱 개통",
			Value: fmt.Sprintf("**%d** / %s (%s)\n예상 %s건",
				summary.TotalActivations, common.FormatDecimal(summary.DailyActivationGoal),
				common.FormatPercent(summary.CurrentActivationAchievement), common.FormatDecimal(summary.PredictedActivations)),
			Inline: true,
		},
	)

	if len(summary.Products) > 0 {
		lines := make([]string, 0, len(summary.Products))
		for _, p := range summary.Products {
			lines = append(lines, fmt.Sprintf("%s **%d** / %s · 예상 %s",
				p.Name, p.TotalSuccesses, common.FormatDecimal(p.DailyGoal), common.FormatPercent(p.PredictedAchievement)))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "📦 상품별",
			Value: strings.Join(lines, "\n"),
		})
	}

	embed.Fields = append(embed.Fields, monthlyField(d))

	if len(d.Pacing) > 0 {
		lines := make([]string, 0, len(d.Pacing))
		for _, track := range d.Pacing {
			lines = append(lines, fmt.Sprintf("%s %s %s (기대 %s)",
				common.PacingEmoji(track.Status), trackLabels[track.Name],
				common.FormatPercent(track.CompletionPct), common.FormatPercent(track.ExpectedProgress)))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🗓️ 월간 페이스",
			Value: strings.Join(lines, "\n"),
		})
	}

	embed.Fields = append(embed.Fields, simulationField(d.Simulation))

	if c := d.Comparison; c != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("↕️ 어제 같은 시간 (%s)", c.Checkpoint),
			Value: fmt.Sprintf("성공 %d (%s) · 개통 %d (%s)",
				c.Successes.Current, common.FormatSigned(c.Successes.Diff),
				c.Activations.Current, common.FormatSigned(c.Activations.Diff)),
		})
	}

	return embed
}

func monthlyField(d *models.Dashboard) *discordgo.MessageEmbedField {
	snapshot := d.MonthlyProgress.Snapshot
	target := d.Settings.TotalProductTarget()
	total := snapshot.TotalSuccesses()

	pct := 0.0
	if target > 0 {
		pct = float64(total) / float64(target) * 100
	}

	source := "일별 기록 합계"
	if d.MonthlyProgress.Provenance == models.ProvenanceOverridden {
		source = "수동 입력"
	}

	return &discordgo.MessageEmbedField{
		Name: "📈 월 누적",
		Value: fmt.Sprintf("성공 **%s** / %s (%s)\n%s\n개통 %s / %d · 근무일 진행 %s\n_%s_",
			common.FormatCount(int64(total)), common.FormatCount(int64(target)), common.FormatPercent(pct),
			common.ProgressBar(pct, common.ProgressBarWidth),
			common.FormatCount(int64(snapshot.Activations)), d.Settings.CoreGoals.ActivationGoal,
			common.FormatPercent(d.WorkdayProgress), source),
	}
}

func simulationField(sim models.Simulation) *discordgo.MessageEmbedField {
	scope := "전체"
	if !sim.Scope.IsOverall() {
		scope = sim.Scope.Product
	}

	var guide string
	switch sim.Guide.Type {
	case models.GuideFinished:
		guide = "오늘 업무가 종료되었습니다."
	case models.GuideSuccess:
		guide = fmt.Sprintf("예상 기준 목표 대비 %s건 여유가 있습니다.", common.FormatDecimal(-sim.Guide.Gap))
	case models.GuideDanger:
		guide = fmt.Sprintf("목표까지 %s건 부족합니다.", common.FormatDecimal(sim.Guide.Gap))
		if sim.Guide.RequiredPerHour != nil {
			guide += fmt.Sprintf(" 시간당 %s건 이상 필요합니다.", common.FormatDecimal(*sim.Guide.RequiredPerHour))
		}
	}

	return &discordgo.MessageEmbedField{
		Name: fmt.Sprintf("🔮 시뮬레이션 (%s, 시간당 %s)", scope, common.FormatDecimal(sim.AdjustmentPerHour)),
		Value: fmt.Sprintf("남은 %d시간 · 예상 %s / %s (%s)\n%s",
			sim.RemainingHours, common.FormatDecimal(sim.SimulatedTotal), common.FormatDecimal(sim.Goal),
			common.FormatPercent(sim.SimulatedAchievement), guide),
	}
}

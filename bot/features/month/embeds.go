package month

import (
	"fmt"
	"time"

	"salespoint/bot/common"
	"salespoint/models"

	"github.com/bwmarrin/discordgo"
)

// BuildProgressEmbed shows month-to-date totals against each product target
func BuildProgressEmbed(teamLabel string, month models.YearMonth, progress *models.MonthlyProgress, settings models.TeamSettings) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("📈 %s %s 월 누적", teamLabel, month),
		Color:     common.ColorPrimary,
		Timestamp: time.Now().Format(time.RFC3339),
		Fields:    []*discordgo.MessageEmbedField{},
	}

	snapshot := progress.Snapshot
	for _, goal := range settings.ProductGoals {
		count := snapshot.Products[goal.Name]
		pct := 0.0
		if goal.MonthlyTarget > 0 {
			pct = float64(count) / float64(goal.MonthlyTarget) * 100
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: goal.Name,
			Value: fmt.Sprintf("**%s** / %s (%s)\n%s",
				common.FormatCount(int64(count)), common.FormatCount(int64(goal.MonthlyTarget)),
				common.FormatPercent(pct), common.ProgressBar(pct, common.ProgressBarWidth)),
			Inline: true,
		})
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "개통",
		Value:  fmt.Sprintf("**%s** / %s", common.FormatCount(int64(snapshot.Activations)), common.FormatCount(int64(settings.CoreGoals.ActivationGoal))),
		Inline: true,
	})

	if progress.Provenance == models.ProvenanceOverridden {
		embed.Color = common.ColorWarning
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "수동 입력 값이 적용 중입니다. /month clear 로 해제할 수 있습니다."}
	} else {
		text := fmt.Sprintf("일별 기록 %d일 합계", progress.DaysScanned)
		if progress.DaysSkipped > 0 {
			text += fmt.Sprintf(" · 손상된 기록 %d일 제외", progress.DaysSkipped)
		}
		embed.Footer = &discordgo.MessageEmbedFooter{Text: text}
	}
	return embed
}

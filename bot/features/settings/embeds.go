package settings

import (
	"fmt"
	"strings"

	"salespoint/bot/common"
	"salespoint/models"

	"github.com/bwmarrin/discordgo"
)

// BuildSettingsEmbed shows a team's weights, goals and products
func BuildSettingsEmbed(teamLabel string, settings models.TeamSettings) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("⚙️ %s 설정", teamLabel),
		Color:  common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{},
	}

	intervals := settings.Weights.Intervals()
	weights := make([]string, 0, len(intervals))
	for _, iv := range intervals {
		share := "+" + common.FormatDecimal(iv.Share)
		if iv.Share < 0 {
			share = "-" + common.FormatDecimal(-iv.Share)
		}
		weights = append(weights, fmt.Sprintf("`%s` %s%% (%s)", iv.Checkpoint,
			common.FormatDecimal(settings.Weights[iv.Checkpoint]), share))
	}
	weightField := &discordgo.MessageEmbedField{
		Name:  "⏱️ 누적 가중치",
		Value: strings.Join(weights, "\n"),
	}
	if settings.Weights.FinalWeightMismatch() {
		weightField.Value += "\n⚠️ 마지막 가중치가 100%가 아닙니다."
	}
	embed.Fields = append(embed.Fields, weightField)

	goals := settings.CoreGoals
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "🎯 월 목표",
		Value: fmt.Sprintf("시도율 %s\n적극 시도율 %s\nSTT 언급률 %s\n개통 %d건",
			common.FormatPercent(goals.AttemptRate), common.FormatPercent(goals.ActiveAttemptRate),
			common.FormatPercent(goals.SpeechMentionRate), goals.ActivationGoal),
		Inline: true,
	})

	monthInfo := "자동 계산"
	if o := settings.MonthInfoOverride; !o.IsEmpty() {
		var parts []string
		if o.OpeningDays != nil {
			parts = append(parts, fmt.Sprintf("개통 가능일 %d일", *o.OpeningDays))
		}
		if o.NetApplicationDays != nil {
			parts = append(parts, fmt.Sprintf("순신청일 %d일", *o.NetApplicationDays))
		}
		monthInfo = strings.Join(parts, "\n")
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "📅 근무일 수",
		Value:  monthInfo,
		Inline: true,
	})

	products := make([]string, 0, len(settings.ProductGoals))
	for _, p := range settings.ProductGoals {
		products = append(products, fmt.Sprintf("`#%d` %s · 월 %s건", p.ID, p.Name, common.FormatCount(int64(p.MonthlyTarget))))
	}
	if len(products) == 0 {
		products = append(products, "등록된 상품이 없습니다.")
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "📦 상품",
		Value: strings.Join(products, "\n"),
	})

	return embed
}

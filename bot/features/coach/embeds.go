package coach

import (
	"fmt"

	"salespoint/bot/common"
	"salespoint/models"

	"github.com/bwmarrin/discordgo"
)

// BuildCoachingEmbed wraps generated advice
func BuildCoachingEmbed(teamLabel, advice string, feedback models.FeedbackLevel) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🧑‍🏫 %s AI 코칭", teamLabel),
		Description: advice,
		Color:       common.FeedbackColor(feedback),
		Footer:      &discordgo.MessageEmbedFooter{Text: "AI가 생성한 조언입니다."},
	}
}

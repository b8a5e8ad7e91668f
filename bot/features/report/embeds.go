package report

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"salespoint/bot/common"
	"salespoint/models"
	"salespoint/service"

	"github.com/bwmarrin/discordgo"
)

func formatSuccesses(successes map[string]int) string {
	if len(successes) == 0 {
		return "-"
	}
	names := make([]string, 0, len(successes))
	for name := range successes {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %d", name, successes[name]))
	}
	return strings.Join(parts, ", ")
}

func entryLine(e models.CheckpointEntry) string {
	return fmt.Sprintf("콜 **%d** · 메모 %d · 매니저 %d · STT %d · 성공 **%d** · 개통 %d\n%s",
		e.Calls, e.MemoAttempts, e.ManagerAttempts, e.SpeechAttempts, e.TotalSuccesses(), e.Activations,
		formatSuccesses(e.ProductSuccesses))
}

// BuildEntriesEmbed lists a day's entries after a change
func BuildEntriesEmbed(teamLabel string, date time.Time, result *service.EntryResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("📝 %s 실적 · %s", teamLabel, service.DateKey(date)),
		Color:     common.ColorPrimary,
		Timestamp: time.Now().Format(time.RFC3339),
		Fields:    []*discordgo.MessageEmbedField{},
	}

	var entries []models.CheckpointEntry
	if result != nil && result.Record != nil {
		entries = append(entries, result.Record.Entries...)
	}
	models.SortEntries(entries)

	if len(entries) == 0 {
		embed.Description = "입력된 실적이 없습니다."
	}
	for _, e := range entries {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  e.ReportingTime.String(),
			Value: entryLine(e),
		})
	}

	if result != nil {
		if result.Replaced {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: "같은 시간대의 기존 기록을 덮어썼습니다."}
		}
		if result.Notice != "" {
			embed.Color = common.ColorWarning
			embed.Description = "⚠️ " + result.Notice
		}
	}
	return embed
}

// BuildDraftEmbed shows an AI-parsed entry awaiting confirmation
func BuildDraftEmbed(teamLabel string, entry models.CheckpointEntry) *discordgo.MessageEmbed {
	timeLabel := entry.ReportingTime.String()
	if !entry.ReportingTime.IsValid() {
		timeLabel = "시간 미확인"
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🤖 AI 분석 결과 확인",
		Description: fmt.Sprintf("%s · %s\n%s", teamLabel, timeLabel, entryLine(entry)),
		Color:       common.ColorInfo,
		Footer:      &discordgo.MessageEmbedFooter{Text: "내용이 맞으면 저장을 눌러주세요."},
	}
	if err := entry.Validate(); err != nil {
		embed.Color = common.ColorWarning
		embed.Footer.Text = "⚠️ " + common.UserMessageFor(err)
	}
	return embed
}

// CreateDraftButtons creates the confirm and cancel buttons for a draft
func CreateDraftButtons(id string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "✅ 저장",
					Style:    discordgo.SuccessButton,
					CustomID: confirmIDPrefix + id,
				},
				discordgo.Button{
					Label:    "취소",
					Style:    discordgo.SecondaryButton,
					CustomID: cancelIDPrefix + id,
				},
			},
		},
	}
}

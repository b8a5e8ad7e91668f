package report

import (
	"context"
	"fmt"

	"salespoint/bot/common"
	"salespoint/models"
	"salespoint/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// entryFromOptions builds an entry from the /report add options
func entryFromOptions(opts common.Options) (models.CheckpointEntry, error) {
	var entry models.CheckpointEntry

	if hour, ok := opts.Int("time"); ok {
		entry.ReportingTime = models.Checkpoint(hour)
	}
	calls, _ := opts.Int("calls")
	memo, _ := opts.Int("memo")
	manager, _ := opts.Int("manager")
	stt, _ := opts.Int("stt")
	activations, _ := opts.Int("activations")

	entry.Calls = int(calls)
	entry.MemoAttempts = int(memo)
	entry.ManagerAttempts = int(manager)
	entry.SpeechAttempts = int(stt)
	entry.Activations = int(activations)

	successes, err := common.ParseCounts(opts.String("successes"))
	if err != nil {
		return entry, common.NewUserError("성공 건수는 '상품명=건수, 상품명=건수' 형식으로 입력해주세요.", err.Error())
	}
	entry.ProductSuccesses = successes
	return entry, nil
}

func (f *Feature) handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	team := opts.Team()

	entry, err := entryFromOptions(opts)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	result, err := f.entries.RecordEntry(ctx, team, f.clock.Today(), entry)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	embed := BuildEntriesEmbed(f.teams.TeamLabel(team), f.clock.Today(), result)
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to report add: %v", err)
	}
}

func (f *Feature) handleDelete(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	team := opts.Team()
	hour, _ := opts.Int("time")

	result, err := f.entries.DeleteEntry(ctx, team, f.clock.Today(), models.Checkpoint(hour))
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	embed := BuildEntriesEmbed(f.teams.TeamLabel(team), f.clock.Today(), result)
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to report delete: %v", err)
	}
}

func (f *Feature) handleReset(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	team := opts.Team()

	if !common.IsUserAdmin(s, i.GuildID, common.InteractionUserID(i)) {
		common.RespondWithError(s, i, "오늘 기록 초기화는 관리자만 할 수 있습니다.")
		return
	}

	result, err := f.entries.ResetDay(ctx, team, f.clock.Today())
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	message := fmt.Sprintf("%s 오늘 기록을 초기화했습니다.", f.teams.TeamLabel(team))
	if result.Notice != "" {
		message += "\n⚠️ " + result.Notice
	}
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to report reset: %v", err)
	}
}

func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	team := opts.Team()

	date, err := opts.Date(f.clock)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	entries, err := f.entries.GetEntries(ctx, team, date)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	embed := BuildEntriesEmbed(f.teams.TeamLabel(team), date, &service.EntryResult{
		Record: &models.DailyRecord{Entries: entries},
	})
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to report list: %v", err)
	}
}

func (f *Feature) handleSmart(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	team := opts.Team()
	text := opts.String("text")

	// Text generation can exceed the 3 second interaction deadline
	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring smart report: %v", err)
		return
	}

	entry, err := f.smartInput.ParseReport(context.Background(), team, text)
	if f.metrics != nil {
		f.metrics.ObserveAI("smart_input", err)
	}
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	id := f.drafts.put(&draft{
		Team:   team,
		UserID: common.InteractionUserID(i),
		Entry:  *entry,
	})

	embed := BuildDraftEmbed(f.teams.TeamLabel(team), *entry)
	if _, err := common.FollowUpWithEmbed(s, i, embed, CreateDraftButtons(id), true); err != nil {
		log.Errorf("Error sending smart report draft: %v", err)
	}
}

func (f *Feature) handleConfirm(s *discordgo.Session, i *discordgo.InteractionCreate, id string) {
	d := f.drafts.peek(id)
	if d == nil {
		common.RespondWithError(s, i, "초안이 만료되었습니다. 다시 입력해주세요.")
		return
	}
	if d.UserID != common.InteractionUserID(i) {
		common.RespondWithError(s, i, "초안을 만든 사람만 저장할 수 있습니다.")
		return
	}
	f.drafts.take(id)

	result, err := f.entries.RecordEntry(context.Background(), d.Team, f.clock.Today(), d.Entry)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	embed := BuildEntriesEmbed(f.teams.TeamLabel(d.Team), f.clock.Today(), result)
	if err := common.UpdateMessage(s, i, embed, []discordgo.MessageComponent{}); err != nil {
		log.Errorf("Error updating confirmed draft: %v", err)
	}
}

func (f *Feature) handleCancel(s *discordgo.Session, i *discordgo.InteractionCreate, id string) {
	d := f.drafts.take(id)
	if d == nil {
		common.RespondWithError(s, i, "초안이 만료되었습니다.")
		return
	}

	embed := BuildDraftEmbed(f.teams.TeamLabel(d.Team), d.Entry)
	embed.Title = "🗑️ 초안 취소됨"
	embed.Color = common.ColorMuted
	if err := common.UpdateMessage(s, i, embed, []discordgo.MessageComponent{}); err != nil {
		log.Errorf("Error updating cancelled draft: %v", err)
	}
}

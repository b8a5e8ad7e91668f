package settings

import (
	"context"

	"salespoint/bot/common"
	"salespoint/models"
	"salespoint/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// respond shows the saved settings or the error that prevented saving
func (f *Feature) respond(s *discordgo.Session, i *discordgo.InteractionCreate, team models.Team, settings *models.TeamSettings, err error, title string) {
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	embed := BuildSettingsEmbed(f.teams.TeamLabel(team), *settings)
	if title != "" {
		embed.Title = title
		embed.Color = common.ColorSuccess
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}

func (f *Feature) handleShow(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	team := opts.Team()
	date, err := opts.Date(f.clock)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	settings, err := f.settings.GetSettings(context.Background(), team, date)
	f.respond(s, i, team, settings, err, "")
}

func (f *Feature) handleWeight(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	team := opts.Team()
	hour, _ := opts.Int("time")
	value, _ := opts.Float("value")

	settings, err := f.settings.SetWeight(context.Background(), team, models.Checkpoint(hour), value)
	f.respond(s, i, team, settings, err, "✅ 가중치를 변경했습니다")
}

func (f *Feature) handleWeightsReset(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	team := opts.Team()
	settings, err := f.settings.ResetWeights(context.Background(), team)
	f.respond(s, i, team, settings, err, "✅ 가중치를 기본값으로 되돌렸습니다")
}

func (f *Feature) handleGoal(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	team := opts.Team()
	value, _ := opts.Float("value")

	settings, err := f.settings.SetCoreGoal(context.Background(), team, service.CoreGoalKey(opts.String("key")), value)
	f.respond(s, i, team, settings, err, "✅ 월 목표를 변경했습니다")
}

func (f *Feature) handleMonthInfo(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	team := opts.Team()
	days, _ := opts.Int("days")

	settings, err := f.settings.SetMonthInfoOverride(context.Background(), team, service.MonthInfoKey(opts.String("key")), int(days))
	f.respond(s, i, team, settings, err, "✅ 근무일 수를 변경했습니다")
}

func (f *Feature) handleProductAdd(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	team := opts.Team()
	goal, _ := opts.Int("goal")

	settings, err := f.settings.AddProductGoal(context.Background(), team, opts.String("name"), int(goal))
	f.respond(s, i, team, settings, err, "✅ 상품을 추가했습니다")
}

func (f *Feature) handleProductUpdate(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	team := opts.Team()
	id, _ := opts.Int("id")
	goal, _ := opts.Int("goal")

	settings, err := f.settings.UpdateProductGoal(context.Background(), team, id, opts.String("name"), int(goal))
	f.respond(s, i, team, settings, err, "✅ 상품을 수정했습니다")
}

func (f *Feature) handleProductRemove(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	team := opts.Team()
	id, _ := opts.Int("id")

	settings, err := f.settings.RemoveProductGoal(context.Background(), team, id)
	f.respond(s, i, team, settings, err, "✅ 상품을 삭제했습니다")
}

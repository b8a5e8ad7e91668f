package month

import (
	"context"
	"fmt"

	"salespoint/bot/common"
	"salespoint/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// monthOption reads the month option, defaulting to the current month
func (f *Feature) monthOption(opts common.Options) (models.YearMonth, error) {
	raw := opts.String("month")
	if raw == "" {
		return models.YearMonthOf(f.clock.Today()), nil
	}
	month, err := models.ParseYearMonth(raw)
	if err != nil {
		return models.YearMonth{}, common.NewUserError("월은 YYYY-MM 형식으로 입력해주세요.", err.Error())
	}
	return month, nil
}

func (f *Feature) handleShow(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	team := opts.Team()

	month, err := f.monthOption(opts)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	// Product goals come from the settings in effect at the end of the month, or today
	asOf := month.FirstDay(f.clock.Location()).AddDate(0, 1, -1)
	if today := f.clock.Today(); today.Before(asOf) {
		asOf = today
	}
	settings, err := f.settings.GetSettings(ctx, team, asOf)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	progress, err := f.rollup.Rollup(ctx, team, month, settings.ProductGoals)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	embed := BuildProgressEmbed(f.teams.TeamLabel(team), month, progress, *settings)
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to month show: %v", err)
	}
}

func (f *Feature) handleSet(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	team := opts.Team()

	if !common.IsUserAdmin(s, i.GuildID, common.InteractionUserID(i)) {
		common.RespondWithError(s, i, "월 누적 수동 입력은 관리자만 할 수 있습니다.")
		return
	}

	month, err := f.monthOption(opts)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	products, err := common.ParseCounts(opts.String("products"))
	if err != nil {
		common.HandleError(s, i, common.NewUserError("상품별 누적은 '상품명=건수' 형식으로 입력해주세요.", err.Error()), false)
		return
	}
	activations, _ := opts.Int("activations")

	snapshot := models.MonthlyProgressSnapshot{Products: products, Activations: int(activations)}
	if err := f.rollup.Override(ctx, team, month, snapshot); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	message := fmt.Sprintf("%s %s 월 누적을 수동 값으로 설정했습니다. (성공 %d · 개통 %d)",
		f.teams.TeamLabel(team), month, snapshot.TotalSuccesses(), snapshot.Activations)
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to month set: %v", err)
	}
}

func (f *Feature) handleClear(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	team := opts.Team()

	if !common.IsUserAdmin(s, i.GuildID, common.InteractionUserID(i)) {
		common.RespondWithError(s, i, "월 누적 수동 입력은 관리자만 해제할 수 있습니다.")
		return
	}

	month, err := f.monthOption(opts)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := f.rollup.ClearOverride(ctx, team, month); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	message := fmt.Sprintf("%s %s 월 누적을 일별 기록 합계로 되돌렸습니다.", f.teams.TeamLabel(team), month)
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to month clear: %v", err)
	}
}

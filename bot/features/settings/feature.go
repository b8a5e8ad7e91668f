package settings

import (
	"salespoint/bot/common"
	"salespoint/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles team settings management
type Feature struct {
	teams    common.TeamDirectory
	settings service.SettingsService
	clock    service.Clock
}

// NewFeature creates a new settings feature instance
func NewFeature(teams common.TeamDirectory, settings service.SettingsService, clock service.Clock) *Feature {
	return &Feature{
		teams:    teams,
		settings: settings,
		clock:    clock,
	}
}

// HandleCommand routes settings commands to appropriate handlers
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub, opts := common.SubCommand(i)

	if err := common.RequireTeam(f.teams, opts.Team()); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if sub == "show" {
		f.handleShow(s, i, opts)
		return
	}

	// Every other subcommand changes settings
	if !common.IsUserAdmin(s, i.GuildID, common.InteractionUserID(i)) {
		common.RespondWithError(s, i, "설정 변경은 관리자만 할 수 있습니다.")
		return
	}

	switch sub {
	case "weight":
		f.handleWeight(s, i, opts)
	case "weights-reset":
		f.handleWeightsReset(s, i, opts)
	case "goal":
		f.handleGoal(s, i, opts)
	case "month-info":
		f.handleMonthInfo(s, i, opts)
	case "product-add":
		f.handleProductAdd(s, i, opts)
	case "product-update":
		f.handleProductUpdate(s, i, opts)
	case "product-remove":
		f.handleProductRemove(s, i, opts)
	default:
		common.RespondWithError(s, i, "알 수 없는 하위 명령입니다.")
	}
}

package month

import (
	"salespoint/bot/common"
	"salespoint/service"

	"github.com/bwmarrin/discordgo"
)

// Feature serves the /month command for month-to-date progress
type Feature struct {
	teams    common.TeamDirectory
	rollup   service.MonthlyRollupService
	settings service.SettingsService
	clock    service.Clock
}

// NewFeature creates a new month feature instance
func NewFeature(teams common.TeamDirectory, rollup service.MonthlyRollupService, settings service.SettingsService, clock service.Clock) *Feature {
	return &Feature{
		teams:    teams,
		rollup:   rollup,
		settings: settings,
		clock:    clock,
	}
}

// HandleCommand routes /month subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub, opts := common.SubCommand(i)

	if err := common.RequireTeam(f.teams, opts.Team()); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	switch sub {
	case "show":
		f.handleShow(s, i, opts)
	case "set":
		f.handleSet(s, i, opts)
	case "clear":
		f.handleClear(s, i, opts)
	default:
		common.RespondWithError(s, i, "알 수 없는 하위 명령입니다.")
	}
}

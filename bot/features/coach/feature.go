package coach

import (
	"context"

	"salespoint/bot/common"
	"salespoint/metrics"
	"salespoint/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature serves /coach, a short AI comment on the current dashboard
type Feature struct {
	teams      common.TeamDirectory
	dashboards service.DashboardService
	coaching   service.CoachingService
	metrics    *metrics.Metrics
	clock      service.Clock
}

// NewFeature creates a new coach feature instance
func NewFeature(teams common.TeamDirectory, dashboards service.DashboardService, coaching service.CoachingService, m *metrics.Metrics, clock service.Clock) *Feature {
	return &Feature{
		teams:      teams,
		dashboards: dashboards,
		coaching:   coaching,
		metrics:    m,
		clock:      clock,
	}
}

// HandleCommand handles /coach
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := common.NewOptions(i.ApplicationCommandData().Options)
	team := opts.Team()

	if err := common.RequireTeam(f.teams, team); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.DeferResponse(s, i, false); err != nil {
		log.Errorf("Error deferring coach: %v", err)
		return
	}

	ctx := context.Background()
	dashboard, err := f.dashboards.GetDashboard(ctx, team, f.clock.Today(), service.DashboardOptions{})
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	label := f.teams.TeamLabel(team)
	advice, err := f.coaching.GenerateCoaching(ctx, dashboard, label)
	if f.metrics != nil {
		f.metrics.ObserveAI("coaching", err)
	}
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	if _, err := common.FollowUpWithEmbed(s, i, BuildCoachingEmbed(label, advice, dashboard.Feedback), nil, false); err != nil {
		log.Errorf("Error sending coaching: %v", err)
	}
}

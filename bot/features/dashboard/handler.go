package dashboard

import (
	"context"
	"fmt"

	"salespoint/bot/common"
	"salespoint/models"
	"salespoint/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleCommand handles /dashboard
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := common.NewOptions(i.ApplicationCommandData().Options)
	team := opts.Team()

	if err := common.RequireTeam(f.teams, team); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	date, err := opts.Date(f.clock)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	dashboardOpts := service.DashboardOptions{
		Scope: models.SimulationScope{Product: opts.String("product")},
	}
	if adjust, ok := opts.Float("adjust"); ok {
		dashboardOpts.AdjustmentPerHour = adjust
	}

	if err := common.DeferResponse(s, i, false); err != nil {
		log.Errorf("Error deferring dashboard: %v", err)
		return
	}

	dashboard, err := f.dashboards.GetDashboard(context.Background(), team, date, dashboardOpts)
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	embed := BuildDashboardEmbed(f.teams.TeamLabel(team), dashboard)

	if f.renderer == nil {
		if _, err := common.FollowUpWithEmbed(s, i, embed, nil, false); err != nil {
			log.Errorf("Error sending dashboard: %v", err)
		}
		return
	}

	png, err := f.renderer.Render(dashboard)
	if err != nil {
		log.WithFields(log.Fields{
			"team":  team,
			"error": err,
		}).Warn("Failed to render dashboard image")
		if _, err := common.FollowUpWithEmbed(s, i, embed, nil, false); err != nil {
			log.Errorf("Error sending dashboard: %v", err)
		}
		return
	}

	name := fmt.Sprintf("dashboard-%s-%s.png", team, service.DateKey(dashboard.Date))
	embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://" + name}
	if _, err := common.FollowUpWithFile(s, i, embed, name, "image/png", png); err != nil {
		log.Errorf("Error sending dashboard image: %v", err)
	}
}

package bot

import (
	"context"
	"fmt"

	"salespoint/bot/common"
	"salespoint/bot/features/coach"
	"salespoint/bot/features/dashboard"
	"salespoint/bot/features/month"
	"salespoint/bot/features/report"
	"salespoint/bot/features/settings"
	"salespoint/export"
	"salespoint/metrics"
	"salespoint/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string // empty registers commands globally
	Teams   []TeamChoice
}

// Services bundles what the bot features call into
type Services struct {
	Teams      common.TeamDirectory
	Clock      service.Clock
	Entries    service.EntryService
	Settings   service.SettingsService
	Rollup     service.MonthlyRollupService
	Dashboards service.DashboardService
	SmartInput service.SmartInputService
	Coaching   service.CoachingService
	Renderer   *export.ReportRenderer
	Metrics    *metrics.Metrics
}

type Bot struct {
	config  Config
	session *discordgo.Session
	cancel  context.CancelFunc

	report    *report.Feature
	dashboard *dashboard.Feature
	month     *month.Feature
	settings  *settings.Feature
	coach     *coach.Feature
}

func New(config Config, svc Services) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	ctx, cancel := context.WithCancel(context.Background())
	bot := &Bot{
		config:    config,
		session:   dg,
		cancel:    cancel,
		report:    report.NewFeature(svc.Teams, svc.Entries, svc.SmartInput, svc.Metrics, svc.Clock),
		dashboard: dashboard.NewFeature(svc.Teams, svc.Dashboards, svc.Renderer, svc.Clock),
		month:     month.NewFeature(svc.Teams, svc.Rollup, svc.Settings, svc.Clock),
		settings:  settings.NewFeature(svc.Teams, svc.Settings, svc.Clock),
		coach:     coach.NewFeature(svc.Teams, svc.Dashboards, svc.Coaching, svc.Metrics, svc.Clock),
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component interaction handlers
	dg.AddHandler(bot.handleComponents)

	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.WithFields(log.Fields{
			"user":   r.User.Username,
			"guilds": len(r.Guilds),
		}).Info("Discord session ready")
	})

	// Open websocket connection
	if err := dg.Open(); err != nil {
		cancel()
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		cancel()
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Drop AI drafts nobody confirmed
	go bot.report.StartDraftCleanup(ctx)

	return bot, nil
}

func (b *Bot) Close() error {
	b.cancel()
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "report":
		b.report.HandleCommand(s, i)
	case "dashboard":
		b.dashboard.HandleCommand(s, i)
	case "month":
		b.month.HandleCommand(s, i)
	case "settings":
		b.settings.HandleCommand(s, i)
	case "coach":
		b.coach.HandleCommand(s, i)
	}
}

// handleComponents routes button presses to the feature that owns them
func (b *Bot) handleComponents(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	if report.Owns(i.MessageComponentData().CustomID) {
		b.report.HandleInteraction(s, i)
	}
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"salespoint/bot"
	"salespoint/config"
	"salespoint/database"
	"salespoint/events"
	"salespoint/export"
	"salespoint/httpapi"
	"salespoint/infrastructure"
	"salespoint/metrics"
	"salespoint/repository"
	"salespoint/service"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging applies the configured level and picks JSON output outside development
func ConfigureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	ConfigureLogging(cfg)

	log.WithFields(log.Fields{
		"environment": cfg.Environment,
		"storage":     cfg.StorageBackend,
		"teams":       cfg.Teams,
	}).Info("Starting salespoint...")

	loc := cfg.Location()
	clock := service.NewClock(loc)

	// Initialize event bus and metrics
	eventBus := events.NewBus()
	m := metrics.New()
	m.Subscribe(eventBus)

	// Initialize storage
	var uowFactory service.UnitOfWorkFactory
	var db *database.DB
	switch cfg.StorageBackend {
	case config.StorageMemory:
		log.Warn("Using in-memory storage, records are lost on restart")
		uowFactory = repository.NewMemoryUnitOfWorkFactory(repository.NewMemoryStore(), eventBus, cfg.LegacyTeam)
	default:
		log.Info("Running database migrations...")
		if err := database.RunMigrationsWithURL(cfg.GetDatabaseURL()); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		log.Info("Connecting to database...")
		var err error
		db, err = database.NewConnection(ctx, cfg.GetDatabaseURL())
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		uowFactory = repository.NewUnitOfWorkFactory(db, eventBus, cfg.LegacyTeam)
	}

	// Forward events to NATS when configured
	var natsClient *infrastructure.NATSClient
	if cfg.NATSServers != "" {
		natsClient = infrastructure.NewNATSClient(cfg.NATSServers)
		if err := connectNATS(ctx, natsClient, eventBus); err != nil {
			log.WithError(err).Warn("NATS unavailable, events stay in-process")
			natsClient = nil
		} else {
			defer natsClient.Close()
		}
	}

	// Text generation is optional; without it smart input and coaching report unavailable
	var generator service.TextGenerator
	if cfg.GeminiAPIKey != "" {
		gemini, err := infrastructure.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.WithError(err).Warn("Gemini client unavailable, AI features disabled")
		} else {
			generator = gemini
			log.WithField("model", cfg.GeminiModel).Info("Gemini text generation enabled")
		}
	} else {
		log.Info("GEMINI_API_KEY not set, AI features disabled")
	}

	renderer, err := loadRenderer(cfg.ReportFontPath)
	if err != nil {
		return err
	}

	// Initialize services
	lookback := cfg.SettingsLookbackDays
	entries := service.NewEntryService(uowFactory, clock, lookback)
	settings := service.NewSettingsService(uowFactory, clock, lookback)
	rollup := service.NewMonthlyRollupService(uowFactory, loc)
	dashboards := service.NewDashboardService(uowFactory, clock, lookback)
	smartInput := service.NewSmartInputService(uowFactory, clock, lookback, generator)
	coaching := service.NewCoachingService(generator, clock)

	// Start HTTP API
	server := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpapi.NewRouter(httpapi.Services{
			Teams:      cfg,
			Clock:      clock,
			Entries:    entries,
			Settings:   settings,
			Rollup:     rollup,
			Dashboards: dashboards,
			SmartInput: smartInput,
			Coaching:   coaching,
			Renderer:   renderer,
			Metrics:    m,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Start Discord bot when a token is configured
	var discordBot *bot.Bot
	if cfg.DiscordToken != "" {
		teams := make([]bot.TeamChoice, 0, len(cfg.Teams))
		for _, t := range cfg.Teams {
			teams = append(teams, bot.TeamChoice{ID: t, Label: cfg.TeamLabel(t)})
		}
		discordBot, err = bot.New(bot.Config{
			Token:   cfg.DiscordToken,
			GuildID: cfg.DiscordGuildID,
			Teams:   teams,
		}, bot.Services{
			Teams:      cfg,
			Clock:      clock,
			Entries:    entries,
			Settings:   settings,
			Rollup:     rollup,
			Dashboards: dashboards,
			SmartInput: smartInput,
			Coaching:   coaching,
			Renderer:   renderer,
			Metrics:    m,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Discord bot: %w", err)
		}
		log.Info("Discord bot initialized successfully")
	} else {
		log.Info("DISCORD_TOKEN not set, running HTTP API only")
	}

	// Wait for shutdown or a fatal server error
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		log.WithError(err).Error("HTTP server failed")
	}

	log.Info("Shutting down...")

	if discordBot != nil {
		if err := discordBot.Close(); err != nil {
			log.WithError(err).Error("Error closing Discord bot")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown timeout exceeded")
	}

	log.Info("Shutdown completed")
	return nil
}

func connectNATS(ctx context.Context, client *infrastructure.NATSClient, eventBus *events.Bus) error {
	if err := client.Connect(ctx); err != nil {
		return err
	}
	mapper := infrastructure.NewEventSubjectMapper()
	if err := client.EnsureEventStream(mapper.StreamSubjects()); err != nil {
		client.Close()
		return err
	}
	infrastructure.NewNATSEventPublisher(client, mapper).Forward(eventBus)
	log.Info("Forwarding domain events to NATS")
	return nil
}

// loadRenderer reads the report font. The bundled Go fonts are used when
// path is empty; they have no Hangul glyphs.
func loadRenderer(path string) (*export.ReportRenderer, error) {
	if path == "" {
		log.Warn("REPORT_FONT_PATH not set, Korean text in PNG reports will not render")
		return export.NewReportRenderer(nil), nil
	}
	fontData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report font: %w", err)
	}
	return export.NewReportRenderer(fontData), nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"salespoint/database"
	"salespoint/models"
)

// Storage backends
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string

	// Database configuration
	DatabaseURL    string
	DatabaseName   string
	StorageBackend string // "postgres" or "memory"

	// HTTP API
	HTTPAddr string

	// NATS configuration
	NATSServers string // empty disables event forwarding

	// AI configuration
	GeminiAPIKey string
	GeminiModel  string

	// Export
	ReportFontPath string // TrueType font with Hangul glyphs for PNG reports

	// Tracking configuration
	Timezone             string
	Teams                []models.Team
	TeamLabels           map[models.Team]string
	LegacyTeam           models.Team // team whose records may still live under the pre-team key
	SettingsLookbackDays int

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// Location returns the configured timezone, falling back to UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// HasTeam reports whether team is configured
func (c *Config) HasTeam(team models.Team) bool {
	for _, t := range c.Teams {
		if t == team {
			return true
		}
	}
	return false
}

// TeamLabel returns the display label for team
func (c *Config) TeamLabel(team models.Team) string {
	if label, ok := c.TeamLabels[team]; ok && label != "" {
		return label
	}
	return string(team)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		// Database
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DatabaseName:   os.Getenv("DATABASE_NAME"),
		StorageBackend: getEnvWithDefault("STORAGE_BACKEND", StoragePostgres),

		// HTTP
		HTTPAddr: getEnvWithDefault("HTTP_ADDR", ":8080"),

		// NATS
		NATSServers: os.Getenv("NATS_SERVERS"),

		// AI
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnvWithDefault("GEMINI_MODEL", "gemini-2.5-flash"),

		// Export
		ReportFontPath: os.Getenv("REPORT_FONT_PATH"),

		// Tracking
		Timezone:             getEnvWithDefault("TIMEZONE", "Asia/Seoul"),
		LegacyTeam:           models.Team(getEnvWithDefault("LEGACY_TEAM", "team1")),
		SettingsLookbackDays: 31,

		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	if lookback := os.Getenv("SETTINGS_LOOKBACK_DAYS"); lookback != "" {
		if parsed, err := strconv.Atoi(lookback); err == nil && parsed >= 0 {
			config.SettingsLookbackDays = parsed
		}
	}

	config.Teams, config.TeamLabels = parseTeams(getEnvWithDefault("TEAMS", "team1=1팀,team2=2팀"))

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.StorageBackend != StoragePostgres && config.StorageBackend != StorageMemory {
			return nil, fmt.Errorf("STORAGE_BACKEND must be %q or %q", StoragePostgres, StorageMemory)
		}
		if config.StorageBackend == StoragePostgres && config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if len(config.Teams) == 0 {
			return nil, fmt.Errorf("TEAMS must list at least one team")
		}
		// If DatabaseName is provided, ensure it's not empty
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// parseTeams reads "id=label,id=label"; a bare id uses itself as the label
func parseTeams(raw string) ([]models.Team, map[models.Team]string) {
	var teams []models.Team
	labels := make(map[models.Team]string)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, label, _ := strings.Cut(part, "=")
		team := models.Team(strings.TrimSpace(id))
		if team == "" {
			continue
		}
		teams = append(teams, team)
		labels[team] = strings.TrimSpace(label)
	}
	return teams, labels
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:          "test",
		StorageBackend:       StorageMemory,
		Timezone:             "Asia/Seoul",
		Teams:                []models.Team{"team1", "team2"},
		TeamLabels:           map[models.Team]string{"team1": "1팀", "team2": "2팀"},
		LegacyTeam:           "team1",
		SettingsLookbackDays: 31,
		GeminiModel:          "gemini-2.5-flash",
		LogLevel:             "info",
	}
}

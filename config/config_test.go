package config

import (
	"testing"

	"salespoint/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("TEAMS", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("STORAGE_BACKEND", "")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, StoragePostgres, cfg.StorageBackend)
	assert.Equal(t, []models.Team{"team1", "team2"}, cfg.Teams)
	assert.Equal(t, "1팀", cfg.TeamLabel("team1"))
	assert.Equal(t, models.Team("team1"), cfg.LegacyTeam)
	assert.Equal(t, 31, cfg.SettingsLookbackDays)
	assert.Equal(t, "Asia/Seoul", cfg.Location().String())
}

func TestLoad_RequiresDatabaseURLForPostgres(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("STORAGE_BACKEND", StoragePostgres)
	t.Setenv("DATABASE_URL", "")

	_, err := load()
	assert.Error(t, err)
}

func TestLoad_MemoryBackendNeedsNoDatabase(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("STORAGE_BACKEND", StorageMemory)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SETTINGS_LOOKBACK_DAYS", "7")

	cfg, err := load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.SettingsLookbackDays)
}

func TestParseTeams(t *testing.T) {
	teams, labels := parseTeams(" north=북부 , south,, =nameless")

	assert.Equal(t, []models.Team{"north", "south"}, teams)
	assert.Equal(t, "북부", labels["north"])
	assert.Equal(t, "", labels["south"])
}

func TestTeamLabel_FallsBackToID(t *testing.T) {
	cfg := NewTestConfig()
	assert.Equal(t, "team9", cfg.TeamLabel("team9"))
	assert.True(t, cfg.HasTeam("team2"))
	assert.False(t, cfg.HasTeam("team9"))
}

func TestLocation_InvalidFallsBackToUTC(t *testing.T) {
	cfg := NewTestConfig()
	cfg.Timezone = "Nowhere/Special"
	assert.Equal(t, "UTC", cfg.Location().String())
}

func TestSetTestConfig(t *testing.T) {
	defer ResetConfig()
	testCfg := NewTestConfig()
	SetTestConfig(testCfg)
	assert.Same(t, testCfg, Get())
}

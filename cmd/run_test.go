package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"salespoint/config"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureLogging(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)
	defer log.SetFormatter(&log.TextFormatter{})

	cfg := config.NewTestConfig()
	cfg.LogLevel = "debug"
	cfg.Environment = "production"
	ConfigureLogging(cfg)

	assert.Equal(t, log.DebugLevel, log.GetLevel())
	_, isJSON := log.StandardLogger().Formatter.(*log.JSONFormatter)
	assert.True(t, isJSON)

	cfg.LogLevel = "loud"
	cfg.Environment = "development"
	ConfigureLogging(cfg)

	assert.Equal(t, log.InfoLevel, log.GetLevel())
	_, isText := log.StandardLogger().Formatter.(*log.TextFormatter)
	assert.True(t, isText)
}

func TestLoadRenderer(t *testing.T) {
	t.Run("default fonts", func(t *testing.T) {
		renderer, err := loadRenderer("")
		require.NoError(t, err)
		assert.NotNil(t, renderer)
	})

	t.Run("missing font file", func(t *testing.T) {
		_, err := loadRenderer(filepath.Join(t.TempDir(), "missing.ttf"))
		assert.ErrorContains(t, err, "failed to read report font")
	})

	t.Run("font file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "font.ttf")
		require.NoError(t, os.WriteFile(path, []byte("not really a font"), 0o600))

		renderer, err := loadRenderer(path)
		require.NoError(t, err)
		assert.NotNil(t, renderer)
	})
}

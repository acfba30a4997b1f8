package config_test

import (
	"testing"

	"mention-scanner/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.True(t, cfg.Catalog.Enabled)
	assert.True(t, cfg.Mentions.Enabled)
	assert.Equal(t, 15, cfg.Catalog.StalenessDays)
	assert.InDelta(t, 0.9, cfg.Catalog.WordThreshold, 1e-9)
	assert.Equal(t, "https://slay-the-spire.fandom.com", cfg.Catalog.BaseURL)
	assert.Equal(t, "catalog", cfg.Storage.Bucket)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("CATALOG_STALENESS_DAYS", "3")
	t.Setenv("CATALOG_ENABLED", "false")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Catalog.StalenessDays)
	assert.False(t, cfg.Catalog.Enabled)
}

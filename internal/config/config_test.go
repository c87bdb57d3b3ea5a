package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roi-analyzer/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("PROGRESS_INTERVAL", "")
	t.Setenv("CATALOG_PATH", "")
	t.Setenv("PLOT_EXPORT", "")

	cfg := config.Load()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.ProgressInterval)
	assert.Equal(t, "roi-analyzer.db", cfg.CatalogPath)
	assert.True(t, cfg.PlotExport)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PROGRESS_INTERVAL", "25")
	t.Setenv("CATALOG_PATH", "/tmp/runs.db")
	t.Setenv("PLOT_EXPORT", "false")

	cfg := config.Load()

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 25, cfg.ProgressInterval)
	assert.Equal(t, "/tmp/runs.db", cfg.CatalogPath)
	assert.False(t, cfg.PlotExport)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("PROGRESS_INTERVAL", "not-a-number")
	t.Setenv("PLOT_EXPORT", "maybe")

	cfg := config.Load()

	assert.Equal(t, 10, cfg.ProgressInterval)
	assert.True(t, cfg.PlotExport)
}

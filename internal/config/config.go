package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel         string
	ProgressInterval int // frames between progress callbacks
	CatalogPath      string
	PlotExport       bool
}

// Load reads configuration from the environment, after merging in a
// .env file when one is present in the working directory.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		ProgressInterval: getEnvAsInt("PROGRESS_INTERVAL", 10),
		CatalogPath:      getEnv("CATALOG_PATH", filepath.Join(".", "roi-analyzer.db")),
		PlotExport:       getEnvAsBool("PLOT_EXPORT", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

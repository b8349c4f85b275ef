// Package config reads the site settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DBPath             string
	ImagesDir          string
	CatalogFile        string
	PreloadConcurrency int64
	PreloadFailureTTL  time.Duration
	LogLevel           string
	GinMode            string
}

// Load reads a .env file when one is present, then the process environment.
func Load() (*Config, error) {
	// Ignore a missing .env; real environments set variables directly.
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:        getenv("PORT", "8080"),
		DBPath:      getenv("PORTFOLIO_DB", "portfolio.db"),
		ImagesDir:   getenv("IMAGES_DIR", "./images"),
		CatalogFile: os.Getenv("CATALOG_FILE"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		GinMode:     os.Getenv("GIN_MODE"),
	}

	cfg.PreloadConcurrency = 4
	if v := os.Getenv("PRELOAD_CONCURRENCY"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("PRELOAD_CONCURRENCY must be a positive integer, got %q", v)
		}
		cfg.PreloadConcurrency = n
	}

	cfg.PreloadFailureTTL = 30 * time.Second
	if v := os.Getenv("PRELOAD_FAILURE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("PRELOAD_FAILURE_TTL must be a duration like 30s, got %q", v)
		}
		cfg.PreloadFailureTTL = d
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

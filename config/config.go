package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the client
type Config struct {
	APIBaseURL  string
	DataDir     string
	Environment string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		APIBaseURL:  os.Getenv("DATAHUB_API_URL"),
		DataDir:     os.Getenv("DATAHUB_DATA_DIR"),
	}

	// Set defaults
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:5000"
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			cfg.DataDir = ".datahub"
		} else {
			cfg.DataDir = filepath.Join(home, ".datahub")
		}
	}

	return cfg, nil
}

// Package config loads client configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	APIBaseURL        string        `env:"JOBQUEST_API_URL" default:"http://localhost:8081"`
	CredentialFile    string        `env:"JOBQUEST_CREDENTIALS_FILE"`
	RedisURL          string        `env:"JOBQUEST_REDIS_URL"`
	HTTPTimeout       time.Duration `env:"JOBQUEST_HTTP_TIMEOUT" default:"10s"`
	RequestsPerSecond float64       `env:"JOBQUEST_REQUESTS_PER_SECOND" default:"8"`
	LogLevel          string        `env:"LOG_LEVEL" default:"info"`
	LogFormat         string        `env:"LOG_FORMAT" default:"console"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	parsed, err := url.Parse(cfg.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("JOBQUEST_API_URL must be an absolute URL, got %q", cfg.APIBaseURL)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("JOBQUEST_HTTP_TIMEOUT must be positive, got %s", cfg.HTTPTimeout)
	}

	if cfg.RequestsPerSecond <= 0 {
		return fmt.Errorf("JOBQUEST_REQUESTS_PER_SECOND must be positive, got %v", cfg.RequestsPerSecond)
	}

	if cfg.CredentialFile == "" && cfg.RedisURL == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory for credential file: %w", err)
		}
		cfg.CredentialFile = filepath.Join(home, ".jobquest", "credentials.json")
	}

	return nil
}

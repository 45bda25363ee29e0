package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig holds process-level settings shared by the CLI and the server.
type AppConfig struct {
	LogLevel string      `yaml:"log_level"`
	Listen   string      `yaml:"listen"`
	Rates    RatesConfig `yaml:"rates"`
}

// RatesConfig selects where rate history is fetched from. Every source is
// optional; with none configured the bundled series are used.
type RatesConfig struct {
	File          string        `yaml:"file"`
	URL           string        `yaml:"url"`
	PostgresDSN   string        `yaml:"postgres_dsn"`
	PostgresTable string        `yaml:"postgres_table"`
	RedisAddr     string        `yaml:"redis_addr"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
}

// DefaultAppConfig returns the settings used when nothing is configured.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		LogLevel: "info",
		Listen:   ":8080",
		Rates: RatesConfig{
			PostgresTable: "rate_history",
			CacheTTL:      12 * time.Hour,
			FetchTimeout:  10 * time.Second,
		},
	}
}

// LoadAppConfig reads path (or $INTEREST_CONFIG when path is empty) over the
// defaults, then applies INTEREST_* environment overrides.
func LoadAppConfig(path string) (AppConfig, error) {
	cfg := DefaultAppConfig()

	if path == "" {
		path = os.Getenv("INTEREST_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.LogLevel = getenvDefault("INTEREST_LOG_LEVEL", cfg.LogLevel)
	cfg.Listen = getenvDefault("INTEREST_LISTEN", cfg.Listen)
	cfg.Rates.File = getenvDefault("INTEREST_RATES_FILE", cfg.Rates.File)
	cfg.Rates.URL = getenvDefault("INTEREST_RATES_URL", cfg.Rates.URL)
	cfg.Rates.PostgresDSN = getenvDefault("INTEREST_DATABASE_URL", cfg.Rates.PostgresDSN)
	cfg.Rates.PostgresTable = getenvDefault("INTEREST_RATES_TABLE", cfg.Rates.PostgresTable)
	cfg.Rates.RedisAddr = getenvDefault("INTEREST_REDIS_ADDR", cfg.Rates.RedisAddr)
	cfg.Rates.CacheTTL = getenvDurationDefault("INTEREST_CACHE_TTL", cfg.Rates.CacheTTL)
	cfg.Rates.FetchTimeout = getenvDurationDefault("INTEREST_FETCH_TIMEOUT", cfg.Rates.FetchTimeout)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings that would make the process unusable.
func (c AppConfig) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if c.Rates.CacheTTL < 0 {
		return fmt.Errorf("rates.cache_ttl cannot be negative")
	}
	if c.Rates.PostgresDSN != "" && c.Rates.PostgresTable == "" {
		return fmt.Errorf("rates.postgres_table is required with rates.postgres_dsn")
	}
	return nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvDurationDefault(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

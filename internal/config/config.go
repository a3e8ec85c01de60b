package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	DatabaseURL    string
	HTTPListenAddr string
	LogLevel       string
	ServiceName    string
	// SchemaURL points at a plain-text SQL schema document used by the lazy
	// bootstrapper. When empty the embedded schema is used instead.
	SchemaURL string
	// MonitorWindowDays is the expiry lookahead window for the monitor and
	// check endpoints.
	MonitorWindowDays int
}

func Load() (*Config, error) {
	days, err := strconv.Atoi(getEnv("MONITOR_WINDOW_DAYS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONITOR_WINDOW_DAYS: %w", err)
	}

	cfg := &Config{
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		HTTPListenAddr:    getEnv("HTTP_LISTEN_ADDR", ":8087"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ServiceName:       getEnv("SERVICE_NAME", "certwatch-api"),
		SchemaURL:         getEnv("SCHEMA_URL", ""),
		MonitorWindowDays: days,
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.MonitorWindowDays <= 0 {
		return fmt.Errorf("MONITOR_WINDOW_DAYS must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

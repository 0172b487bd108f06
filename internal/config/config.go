package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Config holds the application configuration.
type Config struct {
	SaveDir      string
	RuleSet      string
	LogLevel     slog.Level
	LogFile      string
	GeminiAPIKey string
	GeminiModel  string
}

// LoadConfig loads the configuration from environment variables.
// GEMINI_API_KEY is optional; without it hints are disabled.
func LoadConfig() (*Config, error) {
	level, err := parseLevel(os.Getenv("MIU_LOG_LEVEL"))
	if err != nil {
		return nil, err
	}

	return &Config{
		SaveDir:      getenv("MIU_SAVE_DIR", ".saves"),
		RuleSet:      getenv("MIU_RULESET", "miu"),
		LogLevel:     level,
		LogFile:      os.Getenv("MIU_LOG_FILE"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getenv("MIU_GEMINI_MODEL", "gemini-2.5-flash"),
	}, nil
}

// HintsEnabled reports whether a Gemini key is configured.
func (c *Config) HintsEnabled() bool {
	return c.GeminiAPIKey != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("MIU_LOG_LEVEL: unknown level %q", s)
}

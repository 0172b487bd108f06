package config

import (
	"log/slog"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"MIU_SAVE_DIR", "MIU_RULESET", "MIU_LOG_LEVEL", "MIU_LOG_FILE", "GEMINI_API_KEY", "MIU_GEMINI_MODEL"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.SaveDir != ".saves" {
		t.Errorf("SaveDir = %q, want .saves", cfg.SaveDir)
	}
	if cfg.RuleSet != "miu" {
		t.Errorf("RuleSet = %q, want miu", cfg.RuleSet)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.HintsEnabled() {
		t.Error("hints should be disabled without an API key")
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("MIU_SAVE_DIR", "/tmp/miu")
	t.Setenv("MIU_RULESET", "miu-classic")
	t.Setenv("MIU_LOG_LEVEL", "debug")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.SaveDir != "/tmp/miu" || cfg.RuleSet != "miu-classic" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if !cfg.HintsEnabled() {
		t.Error("hints should be enabled with an API key")
	}
}

func TestLoadConfig_BadLevel(t *testing.T) {
	t.Setenv("MIU_LOG_LEVEL", "loud")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

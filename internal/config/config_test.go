package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Calendar.WeekStart != "monday" {
		t.Errorf("expected week_start monday, got %s", cfg.Calendar.WeekStart)
	}
	if len(cfg.Shows.Tracked) != 0 {
		t.Errorf("expected no tracked shows, got %v", cfg.Shows.Tracked)
	}
	if cfg.Source.BaseURL != "https://api.tvmaze.com" {
		t.Errorf("expected tvmaze base_url, got %s", cfg.Source.BaseURL)
	}
	if cfg.Source.Concurrency != 4 {
		t.Errorf("expected concurrency 4, got %d", cfg.Source.Concurrency)
	}
	if cfg.UI.Theme != "frappe" {
		t.Errorf("expected theme frappe, got %s", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Calendar.WeekStart != "monday" {
		t.Errorf("expected default week_start, got %s", cfg.Calendar.WeekStart)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[calendar]
week_start = "sunday"

[shows]
tracked = ["82", "169", "44778"]

[source]
base_url = "http://localhost:8080"
timeout = "3s"
concurrency = 2

[storage]
db_path = "/tmp/test.db"

[watch]
schedule = "@hourly"
ics_path = "/tmp/showcal.ics"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.WeekStart() != time.Sunday {
		t.Errorf("expected week start Sunday, got %v", cfg.WeekStart())
	}
	if len(cfg.Shows.Tracked) != 3 || cfg.Shows.Tracked[1] != "169" {
		t.Errorf("expected tracked [82 169 44778], got %v", cfg.Shows.Tracked)
	}
	if cfg.Source.BaseURL != "http://localhost:8080" {
		t.Errorf("expected base_url http://localhost:8080, got %s", cfg.Source.BaseURL)
	}
	if cfg.SourceTimeout() != 3*time.Second {
		t.Errorf("expected timeout 3s, got %v", cfg.SourceTimeout())
	}
	if cfg.Source.Concurrency != 2 {
		t.Errorf("expected concurrency 2, got %d", cfg.Source.Concurrency)
	}
	// Unset keys keep defaults.
	if cfg.Source.UserAgent != "showcal/1.0" {
		t.Errorf("expected default user_agent, got %s", cfg.Source.UserAgent)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.Watch.Schedule != "@hourly" {
		t.Errorf("expected schedule @hourly, got %s", cfg.Watch.Schedule)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[calendar\nweek_start="), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[calendar]
week_start = "sunday"

[shows]
tracked = ["1"]

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("SHOWCAL_WEEK_START", "wednesday")
	t.Setenv("SHOWCAL_SHOWS", "82, 169,,")
	t.Setenv("SHOWCAL_SOURCE_CONCURRENCY", "8")
	t.Setenv("SHOWCAL_LOG_LEVEL", "debug")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.WeekStart() != time.Wednesday {
		t.Errorf("expected week start Wednesday from env, got %v", cfg.WeekStart())
	}
	if len(cfg.Shows.Tracked) != 2 || cfg.Shows.Tracked[0] != "82" || cfg.Shows.Tracked[1] != "169" {
		t.Errorf("expected tracked [82 169] from env, got %v", cfg.Shows.Tracked)
	}
	// File value should be kept when no env override
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path from file, got %s", cfg.Storage.DBPath)
	}
	// Env should override default
	if cfg.Source.Concurrency != 8 {
		t.Errorf("expected concurrency 8 from env, got %d", cfg.Source.Concurrency)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug from env, got %s", cfg.Log.Level)
	}
}

func TestLoadFrom_BadEnvConcurrency(t *testing.T) {
	t.Setenv("SHOWCAL_SOURCE_CONCURRENCY", "many")
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for non-numeric concurrency")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad week start", func(c *Config) { c.Calendar.WeekStart = "funday" }},
		{"blank show id", func(c *Config) { c.Shows.Tracked = []string{"1", " "} }},
		{"duplicate show id", func(c *Config) { c.Shows.Tracked = []string{"1", " 1"} }},
		{"empty base url", func(c *Config) { c.Source.BaseURL = "" }},
		{"bad timeout", func(c *Config) { c.Source.Timeout = "soon" }},
		{"zero timeout", func(c *Config) { c.Source.Timeout = "0s" }},
		{"zero concurrency", func(c *Config) { c.Source.Concurrency = 0 }},
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }},
		{"bad log level", func(c *Config) { c.Log.Level = "chatty" }},
		{"bad schedule", func(c *Config) { c.Watch.Schedule = "every now and then" }},
		{"empty ics path", func(c *Config) { c.Watch.ICSPath = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestIsTracked(t *testing.T) {
	cfg := Default()
	cfg.Shows.Tracked = []string{"82", " 169 "}

	tests := []struct {
		id   string
		want bool
	}{
		{"82", true},
		{"169", true},
		{"1", false},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			if got := cfg.IsTracked(tc.id); got != tc.want {
				t.Errorf("IsTracked(%q) = %v, want %v", tc.id, got, tc.want)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	cfg := Default()
	cfg.Calendar.WeekStart = "saturday"
	cfg.Shows.Tracked = []string{"82", "169"}
	cfg.UI.Theme = "latte"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.WeekStart() != time.Saturday {
		t.Errorf("expected week start Saturday, got %v", loaded.WeekStart())
	}
	if len(loaded.Shows.Tracked) != 2 {
		t.Errorf("expected 2 tracked shows, got %v", loaded.Shows.Tracked)
	}
	if loaded.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", loaded.UI.Theme)
	}
}

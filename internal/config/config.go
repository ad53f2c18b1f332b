// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"

	"github.com/javiermolinar/showcal/internal/dateutil"
	"github.com/javiermolinar/showcal/internal/logging"
	"github.com/javiermolinar/showcal/internal/show"
)

// Config holds the application configuration.
type Config struct {
	Calendar CalendarConfig `toml:"calendar"`
	Shows    ShowsConfig    `toml:"shows"`
	Source   SourceConfig   `toml:"source"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
	Log      LogConfig      `toml:"log"`
	Watch    WatchConfig    `toml:"watch"`
}

// CalendarConfig holds grid settings.
type CalendarConfig struct {
	WeekStart string `toml:"week_start"` // e.g., "monday"
}

// ShowsConfig lists the tracked TVmaze show IDs, in display order.
type ShowsConfig struct {
	Tracked []string `toml:"tracked"`
}

// SourceConfig holds TVmaze client settings.
type SourceConfig struct {
	BaseURL     string `toml:"base_url"`
	Timeout     string `toml:"timeout"` // Go duration, e.g. "15s"
	UserAgent   string `toml:"user_agent"`
	Concurrency int    `toml:"concurrency"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// LogConfig holds logging settings.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Schedule string `toml:"schedule"` // standard 5-field cron spec or @descriptor
	ICSPath  string `toml:"ics_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Calendar: CalendarConfig{
			WeekStart: "monday",
		},
		Shows: ShowsConfig{
			Tracked: []string{},
		},
		Source: SourceConfig{
			BaseURL:     "https://api.tvmaze.com",
			Timeout:     "15s",
			UserAgent:   "showcal/1.0",
			Concurrency: 4,
		},
		Storage: StorageConfig{
			DBPath: defaultDataPath("showcal.db"),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
		Log: LogConfig{
			File:  defaultDataPath("showcal.log"),
			Level: "info",
		},
		Watch: WatchConfig{
			Schedule: "0 */6 * * *",
			ICSPath:  defaultDataPath("showcal.ics"),
		},
	}
}

// defaultDataPath returns a file under the showcal data directory.
func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".local", "share", "showcal", name)
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "showcal", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Watch.ICSPath = expandPath(cfg.Watch.ICSPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("SHOWCAL_WEEK_START"); v != "" {
		cfg.Calendar.WeekStart = v
	}
	if v := os.Getenv("SHOWCAL_SHOWS"); v != "" {
		cfg.Shows.Tracked = splitList(v)
	}

	if v := os.Getenv("SHOWCAL_SOURCE_BASE_URL"); v != "" {
		cfg.Source.BaseURL = v
	}
	if v := os.Getenv("SHOWCAL_SOURCE_TIMEOUT"); v != "" {
		cfg.Source.Timeout = v
	}
	if v := os.Getenv("SHOWCAL_SOURCE_USER_AGENT"); v != "" {
		cfg.Source.UserAgent = v
	}
	if v := os.Getenv("SHOWCAL_SOURCE_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SHOWCAL_SOURCE_CONCURRENCY: %w", err)
		}
		cfg.Source.Concurrency = n
	}

	if v := os.Getenv("SHOWCAL_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("SHOWCAL_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("SHOWCAL_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("SHOWCAL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SHOWCAL_WATCH_SCHEDULE"); v != "" {
		cfg.Watch.Schedule = v
	}
	if v := os.Getenv("SHOWCAL_WATCH_ICS_PATH"); v != "" {
		cfg.Watch.ICSPath = v
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := dateutil.ParseWeekday(c.Calendar.WeekStart); err != nil {
		return fmt.Errorf("week_start: %w: %q", err, c.Calendar.WeekStart)
	}

	seen := make(map[string]bool)
	for _, raw := range c.Shows.Tracked {
		id, err := show.NormalizeID(raw)
		if err != nil {
			return fmt.Errorf("tracked: %w", err)
		}
		if seen[id] {
			return fmt.Errorf("tracked: duplicate show id %s", id)
		}
		seen[id] = true
	}

	if c.Source.BaseURL == "" {
		return errors.New("base_url must be set")
	}
	if d, err := time.ParseDuration(c.Source.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("timeout must be a positive duration, got %q", c.Source.Timeout)
	}
	if c.Source.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Source.Concurrency)
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	if _, err := cron.ParseStandard(c.Watch.Schedule); err != nil {
		return fmt.Errorf("watch schedule %q: %w", c.Watch.Schedule, err)
	}
	if c.Watch.ICSPath == "" {
		return errors.New("ics_path must be set")
	}
	return nil
}

// WeekStart returns the configured first day of the week.
func (c *Config) WeekStart() time.Weekday {
	wd, err := dateutil.ParseWeekday(c.Calendar.WeekStart)
	if err != nil {
		return time.Monday
	}
	return wd
}

// SourceTimeout returns the parsed request timeout.
func (c *Config) SourceTimeout() time.Duration {
	d, err := time.ParseDuration(c.Source.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// IsTracked reports whether id is in the tracked list.
func (c *Config) IsTracked(id string) bool {
	for _, t := range c.Shows.Tracked {
		if strings.TrimSpace(t) == id {
			return true
		}
	}
	return false
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/showcal/internal/config"
	"github.com/javiermolinar/showcal/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  showcal config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runConfigInteractive(in io.Reader, out io.Writer) error {
	configPath := config.DefaultConfigPath()
	_, _ = fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		_, _ = fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	editConfig(reader, out, cfg)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	_, _ = fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func editConfig(reader *bufio.Reader, out io.Writer, cfg *config.Config) {
	cfg.Shows.Tracked = promptSlice(reader, out, "Tracked TVmaze show IDs (comma-separated)", cfg.Shows.Tracked)
	cfg.Calendar.WeekStart = promptValue(reader, out, "Week starts on", cfg.Calendar.WeekStart)
	cfg.Source.BaseURL = promptValue(reader, out, "TVmaze base URL", cfg.Source.BaseURL)
	cfg.Source.Timeout = promptValue(reader, out, "Request timeout", cfg.Source.Timeout)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.Log.File = promptValue(reader, out, "Log file", cfg.Log.File)
	cfg.Log.Level = promptValue(reader, out, "Log level", cfg.Log.Level)
	cfg.Watch.Schedule = promptValue(reader, out, "Watch schedule (cron)", cfg.Watch.Schedule)
	cfg.Watch.ICSPath = promptValue(reader, out, "Watch .ics path", cfg.Watch.ICSPath)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)
}

func printConfig(out io.Writer, cfg *config.Config) {
	p := func(format string, args ...any) { _, _ = fmt.Fprintf(out, format, args...) }
	p("Current configuration:\n")
	p("──────────────────────\n")
	p("[calendar]\n")
	p("  week_start       = %s\n", cfg.Calendar.WeekStart)
	p("\n[shows]\n")
	p("  tracked          = %s\n", strings.Join(cfg.Shows.Tracked, ", "))
	p("\n[source]\n")
	p("  base_url         = %s\n", cfg.Source.BaseURL)
	p("  timeout          = %s\n", cfg.Source.Timeout)
	p("  user_agent       = %s\n", cfg.Source.UserAgent)
	p("  concurrency      = %d\n", cfg.Source.Concurrency)
	p("\n[storage]\n")
	p("  db_path          = %s\n", cfg.Storage.DBPath)
	p("\n[ui]\n")
	p("  theme            = %s\n", cfg.UI.Theme)
	p("\n[log]\n")
	p("  file             = %s\n", cfg.Log.File)
	p("  level            = %s\n", cfg.Log.Level)
	p("\n[watch]\n")
	p("  schedule         = %s\n", cfg.Watch.Schedule)
	p("  ics_path         = %s\n", cfg.Watch.ICSPath)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	_, _ = fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		_, _ = fmt.Fprintf(out, "  %s: ", label)
	} else {
		_, _ = fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptSlice(reader *bufio.Reader, out io.Writer, label string, current []string) []string {
	currentStr := strings.Join(current, ", ")
	_, _ = fmt.Fprintf(out, "  %s [%s]: ", label, currentStr)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		_, _ = fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

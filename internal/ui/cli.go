// Package ui implements the showcal command line interface.
package ui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/showcal/internal/config"
	"github.com/javiermolinar/showcal/internal/loader"
	"github.com/javiermolinar/showcal/internal/logging"
	"github.com/javiermolinar/showcal/internal/show"
	"github.com/javiermolinar/showcal/internal/tui"
	"github.com/javiermolinar/showcal/internal/tvmaze"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo     show.Repository
	config   *config.Config
	source   tvmaze.Source
	root     *cobra.Command
	logger   *slog.Logger
	closeLog func() error
	now      func() time.Time
	debug    bool // Enable debug logging
}

// Option configures an App.
type Option func(*App)

// WithSource replaces the TVmaze client built from config.
func WithSource(src tvmaze.Source) Option {
	return func(a *App) { a.source = src }
}

// WithLogger sets a fixed logger and skips file logging setup.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithClock overrides the current time, used to pick the default week.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// NewApp creates a new CLI application with the given repository and config.
func NewApp(repo show.Repository, cfg *config.Config, opts ...Option) *App {
	a := &App{repo: repo, config: cfg, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	if a.source == nil {
		a.source = tvmaze.NewClient(
			tvmaze.WithBaseURL(cfg.Source.BaseURL),
			tvmaze.WithTimeout(cfg.SourceTimeout()),
			tvmaze.WithUserAgent(cfg.Source.UserAgent),
		)
	}

	a.root = &cobra.Command{
		Use:   "showcal",
		Short: "A weekly TV air-date calendar for the terminal",
		Long: `Showcal shows which of your tracked TV shows air this week.

Tracked shows are TVmaze IDs listed in the config file. Episode data is
fetched on demand the first time a show is needed and cached locally.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupLogging(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return tui.Run(cmd.Context(), tui.Options{
				Repo:   a.repo,
				Config: a.config,
				Loader: a.loader(),
				Logger: a.logger,
				Debug:  a.debug,
			})
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.showsCmd())
	a.root.AddCommand(a.refreshCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.watchCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "showcal %s (commit: %s)\n", Version, Commit)
		},
	}
}

// setupLogging builds the logger once per run. The TUI (root command) logs
// to the file only; subcommands also log text to stderr.
func (a *App) setupLogging(cmd *cobra.Command) error {
	if a.logger != nil {
		return nil
	}

	level, err := logging.ParseLevel(a.config.Log.Level)
	if err != nil {
		return err
	}
	if a.debug {
		level = slog.LevelDebug
	}

	stderr := cmd.ErrOrStderr()
	if cmd == a.root {
		stderr = nil
	}
	a.logger, a.closeLog = logging.Setup(a.config.Log.File, stderr, level)
	return nil
}

func (a *App) loader() *loader.Loader {
	return &loader.Loader{
		Source:      a.source,
		Repo:        a.repo,
		Logger:      a.log(),
		Concurrency: a.config.Source.Concurrency,
	}
}

func (a *App) log() *slog.Logger {
	if a.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.logger
}

// Root exposes the cobra command, mainly for tests.
func (a *App) Root() *cobra.Command {
	return a.root
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository and log file.
func (a *App) Close() error {
	var err error
	if a.repo != nil {
		err = a.repo.Close()
	}
	if a.closeLog != nil {
		if cerr := a.closeLog(); err == nil {
			err = cerr
		}
	}
	return err
}

package ui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/showcal/internal/calendar"
	"github.com/javiermolinar/showcal/internal/export"
)

func (a *App) watchCmd() *cobra.Command {
	var schedule string
	var out string
	var once bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh episode data on a schedule and keep an .ics file current",
		Long: `Run in the foreground, refetching every tracked show on a cron schedule.

After each run the current week is written to the iCalendar file, so a
calendar client subscribed to it stays up to date. Stop with Ctrl-C.`,
		Example: `  showcal watch
  showcal watch --schedule "@hourly" --out ~/calendars/tv.ics
  showcal watch --once`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if schedule == "" {
				schedule = a.config.Watch.Schedule
			}
			if out == "" {
				out = a.config.Watch.ICSPath
			}
			out = expandHome(out)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if once {
				return a.watchRun(ctx, out)
			}

			logger := cron.PrintfLogger(slog.NewLogLogger(a.log().Handler(), slog.LevelDebug))
			c := cron.New(cron.WithLogger(logger), cron.WithChain(cron.SkipIfStillRunning(logger)))
			if _, err := c.AddFunc(schedule, func() {
				if err := a.watchRun(ctx, out); err != nil {
					a.log().Error("watch run failed", "error", err)
				}
			}); err != nil {
				return fmt.Errorf("invalid schedule %q: %w", schedule, err)
			}

			if err := a.watchRun(ctx, out); err != nil {
				a.log().Error("watch run failed", "error", err)
			}

			a.log().Info("watching", "schedule", schedule, "ics_path", out)
			c.Start()
			<-ctx.Done()
			<-c.Stop().Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "", "Cron schedule (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "iCalendar file to keep updated (default from config)")
	cmd.Flags().BoolVar(&once, "once", false, "Run a single refresh and exit")
	return cmd
}

// watchRun refetches every tracked show and rewrites the current week's feed.
func (a *App) watchRun(ctx context.Context, path string) error {
	if err := a.repo.SyncTracked(ctx, a.config.Shows.Tracked); err != nil {
		return fmt.Errorf("syncing tracked shows: %w", err)
	}

	intents := make([]calendar.FetchIntent, 0, len(a.config.Shows.Tracked))
	for _, id := range a.config.Shows.Tracked {
		intents = append(intents, calendar.FetchIntent{ShowID: strings.TrimSpace(id)})
	}
	res := a.loader().Dispatch(ctx, intents)
	for _, f := range res.Failures {
		a.log().Warn("show refresh failed", "show_id", f.ShowID, "error", f.Err)
	}

	shows, err := a.repo.ListShows(ctx)
	if err != nil {
		return fmt.Errorf("listing shows: %w", err)
	}

	window := calendar.WeekOf(a.now(), a.config.WeekStart())
	shows, err = a.windowShows(ctx, shows, window)
	if err != nil {
		return err
	}
	if err := (export.Exporter{Now: a.now}).WriteFile(path, shows, window); err != nil {
		return err
	}

	a.log().Info("watch run complete",
		"loaded", len(res.Loaded),
		"failed", len(res.Failures),
		"window", window.String(),
		"ics_path", path,
	)
	return nil
}

// expandHome expands a leading ~/ in flag values.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

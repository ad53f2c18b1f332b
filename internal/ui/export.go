package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/showcal/internal/export"
)

func (a *App) exportCmd() *cobra.Command {
	var date string
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a week as an iCalendar feed",
		Long: `Write the episodes airing during a week as an iCalendar (.ics) file.

Missing episode data is fetched first, as for the week command. With no
--out the feed is written to stdout.`,
		Example: `  showcal export > week.ics
  showcal export --date next-week --out ~/calendars/tv.ics`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			window, err := a.resolveWindow(date)
			if err != nil {
				return err
			}

			res, err := a.loadWeek(cmd.Context(), window)
			if err != nil {
				return fmt.Errorf("loading week: %w", err)
			}
			printFailures(cmd.ErrOrStderr(), res.Failures)

			shows, err := a.windowShows(cmd.Context(), res.Shows, window)
			if err != nil {
				return err
			}

			exp := export.Exporter{Now: a.now}
			if out == "" || out == "-" {
				return exp.Write(cmd.OutOrStdout(), shows, window)
			}

			if err := exp.WriteFile(expandHome(out), shows, window); err != nil {
				return err
			}
			a.log().Info("calendar exported", "path", out, "window", window.String())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any day in the week to export (YYYY-MM-DD, today, next-week...)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

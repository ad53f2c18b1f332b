package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) weekCmd() *cobra.Command {
	var date string
	var noColor bool

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Print the weekly air-date grid",
		Long: `Print a grid of the tracked shows that air during a week.

Shows whose episode data has never been loaded are fetched from TVmaze
first. Only shows with at least one episode in the week get a row.`,
		Example: `  showcal week
  showcal week --date next-week
  showcal week --date 2025-01-15 --no-color`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			window, err := a.resolveWindow(date)
			if err != nil {
				return err
			}

			res, err := a.loadWeek(cmd.Context(), window)
			if err != nil {
				return fmt.Errorf("loading week: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(a.config.Shows.Tracked) == 0 {
				_, _ = fmt.Fprintln(out, "No shows tracked. Add TVmaze IDs under [shows] tracked in the config file.")
				return nil
			}

			RenderWeek(out, res.Model, GridOpts{Today: a.now()})
			printFailures(out, res.Failures)
			_, _ = fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any day in the week to show (YYYY-MM-DD, today, next-week, friday...)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

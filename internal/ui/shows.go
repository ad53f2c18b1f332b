package ui

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

func (a *App) showsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shows",
		Short: "List tracked shows and their load state",
		Long: `List the tracked shows in display order.

The state column tells whether episode data has been loaded, and if so
whether the show has any episodes at all.`,
		Example: `  showcal shows`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.repo.SyncTracked(ctx, a.config.Shows.Tracked); err != nil {
				return fmt.Errorf("syncing tracked shows: %w", err)
			}

			shows, err := a.repo.ListShows(ctx)
			if err != nil {
				return fmt.Errorf("listing shows: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(shows) == 0 {
				_, _ = fmt.Fprintln(out, "No shows tracked.")
				return nil
			}

			for _, s := range shows {
				loadedAt := ""
				if !s.LoadedAt.IsZero() {
					loadedAt = formatMuted("fetched " + s.LoadedAt.Local().Format("2006-01-02 15:04"))
				}
				_, _ = fmt.Fprintf(out, "  %-8s %s  %s  %s  %s\n",
					s.ID,
					runewidth.FillRight(runewidth.Truncate(s.Title(), 30, "…"), 30),
					runewidth.FillRight(runewidth.Truncate(s.Network, 14, "…"), 14),
					stateLabel(s),
					loadedAt,
				)
			}
			return nil
		},
	}
}

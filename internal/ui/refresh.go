package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/showcal/internal/show"
)

func (a *App) refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh [id...]",
		Short: "Refetch episode data",
		Long: `Clear the stored episodes of the given shows and fetch them again.

With no arguments every tracked show is refreshed.`,
		Example: `  showcal refresh
  showcal refresh 82 169`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.repo.SyncTracked(ctx, a.config.Shows.Tracked); err != nil {
				return fmt.Errorf("syncing tracked shows: %w", err)
			}

			ids := a.config.Shows.Tracked
			if len(args) > 0 {
				ids = make([]string, 0, len(args))
				for _, raw := range args {
					id, err := show.NormalizeID(raw)
					if err != nil {
						return err
					}
					if !a.config.IsTracked(id) {
						return fmt.Errorf("%w: %s is not in the tracked list", show.ErrShowNotFound, id)
					}
					ids = append(ids, id)
				}
			}

			res, err := a.loader().Refresh(ctx, ids)
			if err != nil {
				return fmt.Errorf("refreshing: %w", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Refreshed %s of %d show(s).\n", formatStats(fmt.Sprint(len(res.Loaded))), len(ids))
			printFailures(out, res.Failures)
			return res.Err()
		},
	}
}

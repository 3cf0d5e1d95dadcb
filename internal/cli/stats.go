package cli

import (
	"github.com/spf13/cobra"

	"taskboard/internal/format"
)

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Totals over all tasks (ignores filters)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			a := b.Analytics()
			return emit(cmd, app, a, func(r *format.TextRenderer) error {
				return r.Analytics(a)
			})
		},
	}
}

func newViewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Everything the board shows: filtered tasks, projects, selection, filters and stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			snap := b.View()
			return emit(cmd, app, snap, func(r *format.TextRenderer) error {
				if err := r.Projects(snap.Projects, snap.SelectedProjectID); err != nil {
					return err
				}
				if err := r.Tasks(snap.Tasks, snap.Projects); err != nil {
					return err
				}
				return r.Analytics(snap.Analytics)
			})
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"

	"taskboard/internal/tui"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	b, err := loadBoard(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	return tui.Run(b, app.log)
}

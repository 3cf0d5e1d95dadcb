package cli

import (
	"github.com/spf13/cobra"

	"taskboard/internal/model"
)

func newFiltersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "Saved task list filters",
	}
	cmd.AddCommand(newFiltersShowCmd(app))
	cmd.AddCommand(newFiltersSetCmd(app))
	cmd.AddCommand(newFiltersClearCmd(app))
	return cmd
}

func newFiltersShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": b.Filters()})
		},
	}
}

func newFiltersSetCmd(app *App) *cobra.Command {
	var search, status, priority, project string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change saved filters (unspecified fields keep their value)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			f := b.Filters()
			flags := cmd.Flags()
			if flags.Changed("search") {
				f.Search = search
			}
			if flags.Changed("status") {
				if f.Status, err = parseStatusFilter(status); err != nil {
					return writeErr(cmd, err)
				}
			}
			if flags.Changed("priority") {
				if f.Priority, err = parsePriorityFilter(priority); err != nil {
					return writeErr(cmd, err)
				}
			}
			if flags.Changed("project") {
				if project != model.All {
					if _, ok := b.Project(project); !ok {
						return writeErr(cmd, errNotFound("project", project))
					}
				}
				f.ProjectID = project
			}
			b.SetFilters(f)
			if err := app.saved(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": b.Filters()})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive substring of title or description")
	cmd.Flags().StringVar(&status, "status", "", "todo|in-progress|completed|all")
	cmd.Flags().StringVar(&priority, "priority", "", "low|medium|high|urgent|all")
	cmd.Flags().StringVar(&project, "project", "", "Project id or all (also changes the selection)")
	return cmd
}

func newFiltersClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Reset search, status and priority filters (the project selection is kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			f := model.DefaultFilters()
			f.ProjectID = b.SelectedProjectID()
			b.SetFilters(f)
			if err := app.saved(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": b.Filters()})
		},
	}
}

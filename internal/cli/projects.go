package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"taskboard/internal/format"
	"taskboard/internal/model"
	"taskboard/internal/store"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsAddCmd(app))
	cmd.AddCommand(newProjectsUpdateCmd(app))
	cmd.AddCommand(newProjectsDeleteCmd(app))
	cmd.AddCommand(newProjectsSelectCmd(app))
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects with their task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			projects := b.Projects()
			return emit(cmd, app, projects, func(r *format.TextRenderer) error {
				return r.Projects(projects, b.SelectedProjectID())
			})
		},
	}
}

func newProjectsAddCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseProjectName(name)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := parseColor(color)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := loadBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := b.AddProject(n, c)
			if err := app.saved(); err != nil {
				return writeErr(cmd, err)
			}
			p, _ := b.Project(id)
			return emit(cmd, app, p, func(r *format.TextRenderer) error {
				return r.Projects([]model.Project{p}, "")
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&color, "color", store.DefaultProjectColor, "Project color (#rrggbb)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectsUpdateCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Rename or recolor a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			var patch model.ProjectPatch
			if cmd.Flags().Changed("name") {
				n, err := parseProjectName(name)
				if err != nil {
					return writeErr(cmd, err)
				}
				patch.Name = &n
			}
			if cmd.Flags().Changed("color") {
				c, err := parseColor(color)
				if err != nil {
					return writeErr(cmd, err)
				}
				patch.Color = &c
			}
			if patch.Name == nil && patch.Color == nil {
				return writeErr(cmd, invalidInput("flags", "nothing to update (pass --name and/or --color)"))
			}

			b, err := loadBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !b.UpdateProject(id, patch) {
				return writeErr(cmd, errNotFound("project", id))
			}
			if err := app.saved(); err != nil {
				return writeErr(cmd, err)
			}
			p, _ := b.Project(id)
			return emit(cmd, app, p, func(r *format.TextRenderer) error {
				return r.Projects([]model.Project{p}, "")
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New project name")
	cmd.Flags().StringVar(&color, "color", "", "New project color (#rrggbb)")
	return cmd
}

func newProjectsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project and move its tasks to the default project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if id == model.DefaultProjectID {
				return writeErr(cmd, invalidInput("project", "the default project cannot be deleted"))
			}
			b, err := loadBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !b.DeleteProject(id) {
				return writeErr(cmd, errNotFound("project", id))
			}
			if err := app.saved(); err != nil {
				return writeErr(cmd, err)
			}
			projects := b.Projects()
			return emit(cmd, app, map[string]any{"deleted": id, "projects": projects}, func(r *format.TextRenderer) error {
				return r.Projects(projects, b.SelectedProjectID())
			})
		},
	}
}

func newProjectsSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select <project-id|all>",
		Short: "Narrow the task list to one project (or all)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			b, err := loadBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if id != model.All {
				if _, ok := b.Project(id); !ok {
					return writeErr(cmd, errNotFound("project", id))
				}
			}
			b.SetSelectedProjectID(id)
			if err := app.saved(); err != nil {
				return writeErr(cmd, err)
			}
			projects := b.Projects()
			return emit(cmd, app, map[string]any{"selectedProjectId": b.SelectedProjectID()}, func(r *format.TextRenderer) error {
				return r.Projects(projects, b.SelectedProjectID())
			})
		},
	}
}

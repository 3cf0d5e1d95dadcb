package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"taskboard/internal/format"
	"taskboard/internal/model"
	"taskboard/internal/view"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksUpdateCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	cmd.AddCommand(newTasksAdvanceCmd(app))
	cmd.AddCommand(newTasksReorderCmd(app))
	cmd.AddCommand(newTasksImportCmd(app))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var search, status, priority, project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (saved filters apply; flags override them for this call)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}

			f := b.Filters()
			selected := b.SelectedProjectID()
			if cmd.Flags().Changed("search") {
				f.Search = search
			}
			if cmd.Flags().Changed("status") {
				if f.Status, err = parseStatusFilter(status); err != nil {
					return writeErr(cmd, err)
				}
			}
			if cmd.Flags().Changed("priority") {
				if f.Priority, err = parsePriorityFilter(priority); err != nil {
					return writeErr(cmd, err)
				}
			}
			if cmd.Flags().Changed("project") {
				selected = strings.TrimSpace(project)
				if selected == "" {
					selected = model.All
				}
				if selected != model.All {
					if _, ok := b.Project(selected); !ok {
						return writeErr(cmd, errNotFound("project", selected))
					}
				}
				f.ProjectID = selected
			}

			tasks := view.Tasks(b.AllTasks(), f, selected)
			return emit(cmd, app, tasks, func(r *format.TextRenderer) error {
				return r.Tasks(tasks, b.Projects())
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive substring of title or description")
	cmd.Flags().StringVar(&status, "status", "", "Status filter (todo|in-progress|completed|all)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority filter (low|medium|high|urgent|all)")
	cmd.Flags().StringVar(&project, "project", "", "Project id (or all)")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			b, err := loadBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := b.Task(id)
			if !ok {
				return writeErr(cmd, errNotFound("task", id))
			}
			return emitTask(cmd, app, t)
		},
	}
}

func emitTask(cmd *cobra.Command, app *App, t model.Task) error {
	var projects []model.Project
	if app.board != nil {
		projects = app.board.Projects()
	}
	return emit(cmd, app, t, func(r *format.TextRenderer) error {
		return r.Task(t, projects)
	})
}

func newTasksAddCmd(app *App) *cobra.Command {
	var title, description, project, priority, status, due, assignee string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := model.TaskInput{
				Description: strings.TrimSpace(description),
				Assignee:    strings.TrimSpace(assignee),
			}
			var err error
			if in.Title, err = parseTitle(title); err != nil {
				return writeErr(cmd, err)
			}
			if in.Priority, err = parsePriority(priority); err != nil {
				return writeErr(cmd, err)
			}
			if in.Status, err = parseStatus(status); err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(due) != "" {
				if in.DueDate, err = parseDue(due); err != nil {
					return writeErr(cmd, err)
				}
			}

			b, err := loadBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if in.ProjectID, err = targetProject(b, project); err != nil {
				return writeErr(cmd, err)
			}

			t := b.AddTask(in)
			if err := app.saved(); err != nil {
				return writeErr(cmd, err)
			}
			return emitTask(cmd, app, t)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description (markdown)")
	cmd.Flags().StringVar(&project, "project", "", "Project id (default: selected project, else the default project)")
	cmd.Flags().StringVar(&priority, "priority", string(model.PriorityMedium), "Priority (low|medium|high|urgent)")
	cmd.Flags().StringVar(&status, "status", string(model.StatusTodo), "Status (todo|in-progress|completed)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

type projectLookup interface {
	Project(id string) (model.Project, bool)
	SelectedProjectID() string
}

// targetProject resolves the project for a new task: the explicit flag, else the
// selected project, else the default project.
func targetProject(b projectLookup, flag string) (string, error) {
	id := strings.TrimSpace(flag)
	if id == "" {
		id = b.SelectedProjectID()
		if id == "" || id == model.All {
			id = model.DefaultProjectID
		}
	}
	if _, ok := b.Project(id); !ok {
		return "", errNotFound("project", id)
	}
	return id, nil
}

func newTasksUpdateCmd(app *App) *cobra.Command {
	var title, description, project, priority, status, due, assignee string
	var clearDue bool

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Change task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			flags := cmd.Flags()

			var patch model.TaskPatch
			changed := false
			if flags.Changed("title") {
				v, err := parseTitle(title)
				if err != nil {
					return writeErr(cmd, err)
				}
				patch.Title, changed = &v, true
			}
			if flags.Changed("description") {
				v := strings.TrimSpace(description)
				patch.Description, changed = &v, true
			}
			if flags.Changed("priority") {
				v, err := parsePriority(priority)
				if err != nil {
					return writeErr(cmd, err)
				}
				patch.Priority, changed = &v, true
			}
			if flags.Changed("status") {
				v, err := parseStatus(status)
				if err != nil {
					return writeErr(cmd, err)
				}
				patch.Status, changed = &v, true
			}
			if flags.Changed("assignee") {
				v := strings.TrimSpace(assignee)
				patch.Assignee, changed = &v, true
			}
			if clearDue {
				patch.ClearDueDate, changed = true, true
			} else if flags.Changed("due") {
				v, err := parseDue(due)
				if err != nil {
					return writeErr(cmd, err)
				}
				patch.DueDate, changed = v, true
			}
			if !flags.Changed("project") && !changed {
				return writeErr(cmd, invalidInput("flags", "nothing to update"))
			}

			b, err := loadBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if flags.Changed("project") {
				v := strings.TrimSpace(project)
				if _, ok := b.Project(v); !ok {
					return writeErr(cmd, errNotFound("project", v))
				}
				patch.ProjectID = &v
			}

			t, ok := b.UpdateTask(id, patch)
			if !ok {
				return writeErr(cmd, errNotFound("task", id))
			}
			if err := app.saved(); err != nil {
				return writeErr(cmd, err)
			}
			return emitTask(cmd, app, t)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description (markdown)")
	cmd.Flags().StringVar(&project, "project", "", "Move to project id")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high|urgent)")
	cmd.Flags().StringVar(&status, "status", "", "Status (todo|in-progress|completed)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee (empty to unassign)")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due date")
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			b, err := loadBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !b.DeleteTask(id) {
				return writeErr(cmd, errNotFound("task", id))
			}
			if err := app.saved(); err != nil {
				return writeErr(cmd, err)
			}
			return emit(cmd, app, map[string]any{"deleted": id}, func(r *format.TextRenderer) error {
				return r.Tasks(b.Tasks(), b.Projects())
			})
		},
	}
}

func newTasksAdvanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "advance <task-id>",
		Short: "Move a task to its next status (todo -> in-progress -> completed -> todo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			b, err := loadBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := b.AdvanceStatus(id)
			if !ok {
				return writeErr(cmd, errNotFound("task", id))
			}
			if err := app.saved(); err != nil {
				return writeErr(cmd, err)
			}
			return emitTask(cmd, app, t)
		},
	}
}

func newTasksReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <task-id>...",
		Short: "Move the given tasks to the top, in the given order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ids := make([]string, 0, len(args))
			for _, a := range args {
				id := strings.TrimSpace(a)
				if _, ok := b.Task(id); !ok {
					return writeErr(cmd, errNotFound("task", id))
				}
				ids = append(ids, id)
			}
			b.ReorderByIDs(ids)
			if err := app.saved(); err != nil {
				return writeErr(cmd, err)
			}
			tasks := b.Tasks()
			return emit(cmd, app, tasks, func(r *format.TextRenderer) error {
				return r.Tasks(tasks, b.Projects())
			})
		},
	}
}

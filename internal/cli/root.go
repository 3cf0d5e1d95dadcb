package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/format"
	"taskboard/internal/logging"
	"taskboard/internal/store"
)

const envFormat = "TASKBOARD_FORMAT"

type App struct {
	DataDir  string
	Backend  string
	LogLevel string
	Format   string
	Pretty   bool

	log   *log.Logger
	store *store.Store
	board *board.Board
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskboard",
		Short:        "Local task and project board (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  taskboard

  # Scriptable commands
  taskboard tasks add --title "Write report" --priority high --due 2025-03-01
  taskboard tasks list --status todo
  taskboard projects add --name Work --color "#10b981"
  taskboard stats --format text
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !format.Valid(app.Format) {
			return writeErr(cmd, invalidInput("format", fmt.Sprintf("unknown format %q (want json|edn|text)", app.Format)))
		}
		return nil
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.close()
	}

	cmd.PersistentFlags().StringVar(&app.DataDir, "data-dir", "", "Directory holding the board data (overrides config and "+config.EnvDataDir+")")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Storage backend (sqlite|json|memory)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr(envFormat, format.JSON), "Output format (json|edn|text)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print structured output")

	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newFiltersCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newViewCmd(app))
	cmd.AddCommand(newTUICmd(app))

	return cmd
}

// loadBoard opens the configured store once per invocation and builds the board
// over it. Flags win over the environment, which wins over the config file.
func loadBoard(cmd *cobra.Command, app *App) (*board.Board, error) {
	if app.board != nil {
		return app.board, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(app.DataDir); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(app.Backend); v != "" {
		cfg.Backend = v
	}
	if v := strings.TrimSpace(app.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	backend, err := store.ParseBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	kv, err := store.OpenKV(cmd.Context(), backend, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open %s store in %s: %w", backend, cfg.DataDir, err)
	}
	logger.Debug("store opened", "backend", backend, "dir", cfg.DataDir)

	st := store.New(kv,
		store.WithLogger(logger),
		store.WithDefaultProject(cfg.DefaultProject.Name, cfg.DefaultProject.Color),
	)
	app.log = logger
	app.store = st
	app.board = board.New(st,
		board.WithLogger(logger),
		board.WithDefaultProject(st.DefaultProject),
	)
	return app.board, nil
}

// saved reports a persistence failure from the last write as a command error.
// The board keeps working in memory, but a CLI invocation that lost its write
// must not exit zero.
func (app *App) saved() error {
	if app.store == nil {
		return nil
	}
	if err := app.store.Err(); err != nil {
		return fmt.Errorf("changes were not saved: %w", err)
	}
	return nil
}

func (app *App) close() error {
	if app.store == nil {
		return nil
	}
	err := app.store.Close()
	app.store = nil
	app.board = nil
	return err
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// emit writes v in the {"data": ...} envelope for structured formats, or calls
// text for the terminal format.
func emit(cmd *cobra.Command, app *App, v any, text func(*format.TextRenderer) error) error {
	if strings.TrimSpace(app.Format) == format.Text && text != nil {
		return text(format.NewText(cmd.OutOrStdout()))
	}
	return writeOut(cmd, app, map[string]any{"data": v})
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	f := app.Format
	if strings.TrimSpace(f) == format.Text {
		f = format.JSON
	}
	return format.Write(cmd.OutOrStdout(), v, f, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

// IsUsageError reports whether err came from bad input rather than a failure.
func IsUsageError(err error) bool {
	var nf notFoundError
	var ii invalidInputError
	return errors.As(err, &nf) || errors.As(err, &ii)
}

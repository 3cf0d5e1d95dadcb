package cli

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/cobra"

	"taskboard/internal/format"
	"taskboard/internal/model"
)

//go:embed import_schema.json
var importSchemaJSON string

const importSchemaURL = "taskboard://import.schema.json"

type importTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ProjectID   string `json:"projectId"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate"`
	Assignee    string `json:"assignee"`
}

func compileImportSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(importSchemaURL, strings.NewReader(importSchemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(importSchemaURL)
}

// decodeImport validates raw against the import schema and returns the task
// inputs. Nothing is returned unless every entry is valid.
func decodeImport(raw []byte, defaultProject string, projectExists func(string) bool) ([]model.TaskInput, error) {
	schema, err := compileImportSchema()
	if err != nil {
		return nil, fmt.Errorf("compile import schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, invalidInput("import", fmt.Sprintf("not valid JSON: %v", err))
	}
	if err := schema.Validate(doc); err != nil {
		return nil, invalidInput("import", schemaErrorText(err))
	}

	var entries []importTask
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&entries); err != nil {
		return nil, invalidInput("import", err.Error())
	}

	out := make([]model.TaskInput, 0, len(entries))
	for i, e := range entries {
		in := model.TaskInput{
			Title:       strings.TrimSpace(e.Title),
			Description: strings.TrimSpace(e.Description),
			ProjectID:   strings.TrimSpace(e.ProjectID),
			Priority:    model.PriorityMedium,
			Status:      model.StatusTodo,
			Assignee:    strings.TrimSpace(e.Assignee),
		}
		if e.Priority != "" {
			in.Priority = model.Priority(e.Priority)
		}
		if e.Status != "" {
			in.Status = model.Status(e.Status)
		}
		if e.DueDate != "" {
			due, err := parseDue(e.DueDate)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			in.DueDate = due
		}
		if in.ProjectID == "" {
			in.ProjectID = defaultProject
		}
		if !projectExists(in.ProjectID) {
			return nil, fmt.Errorf("entry %d: %w", i, errNotFound("project", in.ProjectID))
		}
		out = append(out, in)
	}
	return out, nil
}

func schemaErrorText(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	var msgs []string
	collectSchemaMessages(ve, &msgs)
	return strings.Join(msgs, "; ")
}

func collectSchemaMessages(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, loc+": "+ve.Message)
		return
	}
	for _, c := range ve.Causes {
		collectSchemaMessages(c, out)
	}
}

func newTasksImportCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Add tasks from a JSON array (all or nothing)",
		Long: strings.TrimSpace(`
Reads a JSON array of tasks and adds them in order. Each entry takes
title (required), description, projectId, priority, status, dueDate and assignee.
The file is validated before anything is written.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			if args[0] == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = os.ReadFile(args[0])
			}
			if err != nil {
				return writeErr(cmd, err)
			}

			b, err := loadBoard(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			def, err := targetProject(b, project)
			if err != nil {
				return writeErr(cmd, err)
			}
			inputs, err := decodeImport(raw, def, func(id string) bool {
				_, ok := b.Project(id)
				return ok
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			added := make([]model.Task, 0, len(inputs))
			for _, in := range inputs {
				added = append(added, b.AddTask(in))
			}
			if err := app.saved(); err != nil {
				return writeErr(cmd, err)
			}
			return emit(cmd, app, added, func(r *format.TextRenderer) error {
				return r.Tasks(added, b.Projects())
			})
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project for entries without projectId (default: selected, else the default project)")
	return cmd
}

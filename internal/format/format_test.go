package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"taskboard/internal/model"
)

func TestWrite_JSONEnvelope(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": model.Project{ID: "p1", Name: "A&B"}}, JSON, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, `{"data":{"id":"p1","name":"A&B"`) {
		t.Fatalf("unexpected json: %s", out)
	}
}

func TestWrite_EDN(t *testing.T) {
	var buf bytes.Buffer
	v := map[string]any{"data": map[string]any{
		"projectId": "default",
		"taskCount": 3,
		"order":     int64(1735787045000),
		"tags":      []string{"a", "b"},
		"dueDate":   nil,
		"done":      true,
	}}
	if err := Write(&buf, v, EDN, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := `{:data {:done true :due-date nil :order 1735787045000 :project-id "default" :tags ["a" "b"] :task-count 3}}` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestWrite_EDNPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": []any{}}, EDN, true); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "{\n  :data []\n}\n"
	if got := buf.String(); got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "yaml", false); err == nil {
		t.Fatalf("expected error")
	}
	if Valid("yaml") || !Valid("text") {
		t.Fatalf("unexpected Valid results")
	}
}

func plainText(buf *bytes.Buffer, now time.Time) *TextRenderer {
	return NewText(buf, WithColorProfile(termenv.Ascii), WithNow(now), WithWidth(60))
}

func TestText_Tasks(t *testing.T) {
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	due := now.Add(-24 * time.Hour)
	projects := []model.Project{{ID: "work", Name: "Work", Color: "#111111"}}
	tasks := []model.Task{
		{ID: "t1", Title: "Write report", ProjectID: "work", Priority: model.PriorityHigh, Status: model.StatusInProgress, DueDate: &due, Assignee: "sam"},
		{ID: "t2", Title: strings.Repeat("very long title ", 10), ProjectID: "work", Priority: model.PriorityLow, Status: model.StatusCompleted},
	}

	var buf bytes.Buffer
	if err := plainText(&buf, now).Tasks(tasks, projects); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"[~] Write report", "high", "● Work", "due 2025-01-31 (overdue)", "@sam", "[x] very long", "…"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no escape codes with Ascii profile:\n%q", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "[") && xansi.StringWidth(line) > 60 {
			t.Fatalf("task line wider than 60 columns: %q", line)
		}
	}
}

func TestText_Tasks_TitleIgnoresMetaWidth(t *testing.T) {
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	due := now.Add(24 * time.Hour)
	projects := []model.Project{{ID: "work", Name: "A rather long project name", Color: "#111111"}}
	tasks := []model.Task{{
		ID: "t1", Title: "Write the quarterly report", ProjectID: "work",
		Priority: model.PriorityUrgent, Status: model.StatusTodo, DueDate: &due, Assignee: "someone.with.a.long.handle",
	}}

	var buf bytes.Buffer
	if err := plainText(&buf, now).Tasks(tasks, projects); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "[ ] Write the quarterly report  t1") {
		t.Fatalf("expected full title on the first line:\n%s", buf.String())
	}
}

func TestText_EmptyTasks(t *testing.T) {
	var buf bytes.Buffer
	if err := plainText(&buf, time.Now()).Tasks(nil, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No tasks.") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestText_TaskRendersMarkdownDescription(t *testing.T) {
	var buf bytes.Buffer
	task := model.Task{ID: "t1", Title: "Doc", Status: model.StatusTodo, Priority: model.PriorityMedium, Description: "# Heading\n\n- first item"}
	if err := plainText(&buf, time.Now()).Task(task, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Heading") || !strings.Contains(out, "first item") {
		t.Fatalf("expected rendered description, got:\n%s", out)
	}
}

func TestText_ProjectsAndAnalytics(t *testing.T) {
	var buf bytes.Buffer
	r := plainText(&buf, time.Now())
	projects := []model.Project{{ID: "default", Name: "My Tasks", Color: "#3b82f6", TaskCount: 2}}
	if err := r.Projects(projects, "default"); err != nil {
		t.Fatalf("render projects: %v", err)
	}
	if err := r.Analytics(model.Analytics{Total: 7, Completed: 2, CompletionRate: 29}); err != nil {
		t.Fatalf("render analytics: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"  All projects", "> ● My Tasks (2)", "total 7", "completion 29%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

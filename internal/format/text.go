package format

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"taskboard/internal/model"
)

const defaultTextWidth = 80

// TextRenderer renders tasks, projects and analytics for a terminal.
type TextRenderer struct {
	w     io.Writer
	r     *lipgloss.Renderer
	width int
	now   time.Time
}

type TextOption func(*TextRenderer)

func WithWidth(n int) TextOption {
	return func(t *TextRenderer) {
		if n > 20 {
			t.width = n
		}
	}
}

func WithColorProfile(p termenv.Profile) TextOption {
	return func(t *TextRenderer) { t.r.SetColorProfile(p) }
}

func WithNow(now time.Time) TextOption {
	return func(t *TextRenderer) { t.now = now }
}

func NewText(w io.Writer, opts ...TextOption) *TextRenderer {
	t := &TextRenderer{
		w:     w,
		r:     lipgloss.NewRenderer(w),
		width: defaultTextWidth,
		now:   time.Now(),
	}
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		t.r.SetColorProfile(termenv.Ascii)
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func statusGlyph(s model.Status) string {
	switch s {
	case model.StatusCompleted:
		return "[x]"
	case model.StatusInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}

func priorityColor(p model.Priority) lipgloss.Color {
	switch p {
	case model.PriorityUrgent:
		return lipgloss.Color("#dc2626")
	case model.PriorityHigh:
		return lipgloss.Color("#ea580c")
	case model.PriorityMedium:
		return lipgloss.Color("#ca8a04")
	default:
		return lipgloss.Color("#6b7280")
	}
}

func (t *TextRenderer) swatch(color string) string {
	return t.r.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}

func (t *TextRenderer) taskLine(task model.Task, projects map[string]model.Project) string {
	muted := t.r.NewStyle().Faint(true)

	var meta []string
	meta = append(meta, t.r.NewStyle().Foreground(priorityColor(task.Priority)).Render(string(task.Priority)))
	if p, ok := projects[task.ProjectID]; ok {
		meta = append(meta, t.swatch(p.Color)+" "+p.Name)
	}
	if task.DueDate != nil {
		due := "due " + task.DueDate.Format("2006-01-02")
		if task.Overdue(t.now) {
			due = t.r.NewStyle().Foreground(lipgloss.Color("#dc2626")).Bold(true).Render(due + " (overdue)")
		}
		meta = append(meta, due)
	}
	if task.Assignee != "" {
		meta = append(meta, "@"+task.Assignee)
	}
	metaStr := strings.Join(meta, "  ")

	// Glyph, title and id share the first line; meta sits on its own line below.
	titleW := t.width - xansi.StringWidth("[~] ") - 2 - xansi.StringWidth(task.ID)
	if titleW < 10 {
		titleW = 10
	}
	title := xansi.Truncate(task.Title, titleW, "…")
	if task.Completed() {
		title = muted.Strikethrough(true).Render(title)
	}
	return fmt.Sprintf("%s %s  %s", statusGlyph(task.Status), title, muted.Render(task.ID)) + "\n    " + metaStr
}

func projectIndex(projects []model.Project) map[string]model.Project {
	m := make(map[string]model.Project, len(projects))
	for _, p := range projects {
		m[p.ID] = p
	}
	return m
}

func (t *TextRenderer) Tasks(tasks []model.Task, projects []model.Project) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(t.w, t.r.NewStyle().Faint(true).Render("No tasks."))
		return err
	}
	idx := projectIndex(projects)
	var sb strings.Builder
	for _, task := range tasks {
		sb.WriteString(t.taskLine(task, idx))
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(t.w, sb.String())
	return err
}

// Task renders one task in full, with its description rendered as markdown.
func (t *TextRenderer) Task(task model.Task, projects []model.Project) error {
	var sb strings.Builder
	sb.WriteString(t.taskLine(task, projectIndex(projects)))
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "    status %s  created %s", task.Status, task.CreatedAt.Format(time.DateTime))
	if task.CompletedAt != nil {
		fmt.Fprintf(&sb, "  completed %s", task.CompletedAt.Format(time.DateTime))
	}
	sb.WriteByte('\n')
	if d := strings.TrimSpace(task.Description); d != "" {
		sb.WriteByte('\n')
		sb.WriteString(t.markdown(d))
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(t.w, sb.String())
	return err
}

func (t *TextRenderer) markdown(md string) string {
	style := styles.DarkStyle
	if t.r.ColorProfile() == termenv.Ascii {
		style = styles.NoTTYStyle
	}
	mr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(t.width),
	)
	if err != nil {
		return md
	}
	out, err := mr.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func (t *TextRenderer) Projects(projects []model.Project, selectedProjectID string) error {
	var sb strings.Builder
	marker := func(id string) string {
		if id == selectedProjectID {
			return "> "
		}
		return "  "
	}
	sb.WriteString(marker(model.All) + "All projects\n")
	for _, p := range projects {
		fmt.Fprintf(&sb, "%s%s %s (%d)  %s\n", marker(p.ID), t.swatch(p.Color), p.Name, p.TaskCount, t.r.NewStyle().Faint(true).Render(p.ID))
	}
	_, err := io.WriteString(t.w, sb.String())
	return err
}

func (t *TextRenderer) Analytics(a model.Analytics) error {
	label := t.r.NewStyle().Faint(true)
	_, err := fmt.Fprintf(t.w, "%s %d  %s %d  %s %d  %s %d  %s %d%%\n",
		label.Render("total"), a.Total,
		label.Render("completed"), a.Completed,
		label.Render("in progress"), a.InProgress,
		label.Render("overdue"), a.Overdue,
		label.Render("completion"), a.CompletionRate,
	)
	return err
}

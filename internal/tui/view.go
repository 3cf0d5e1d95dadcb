package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"taskboard/internal/model"
)

// Rows taken by everything except the task list: tabs, filters, blank line,
// stats, flash/input line and help.
const chromeRows = 6

func (m boardModel) listRows() int {
	return max(1, m.height-chromeRows)
}

func (m boardModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.viewTabs())
	sb.WriteByte('\n')
	sb.WriteString(m.viewFilters())
	sb.WriteString("\n\n")
	sb.WriteString(m.viewTasks())
	sb.WriteByte('\n')
	sb.WriteString(m.viewStats())
	sb.WriteByte('\n')
	switch {
	case m.mode != modeNormal:
		sb.WriteString(m.inputBar())
	case m.flash != "":
		sb.WriteString(flashStyle.Render(m.flash))
	}
	sb.WriteByte('\n')
	sb.WriteString(m.viewHelp())
	return sb.String()
}

func (m boardModel) viewTabs() string {
	sel := m.b.SelectedProjectID()
	tab := func(label string, active bool) string {
		if active {
			return tabActive.Render(label)
		}
		return tabStyle.Render(label)
	}
	parts := []string{headerStyle.Render("taskboard"), tab("All", sel == model.All)}
	for _, p := range m.b.Projects() {
		label := fmt.Sprintf("%s %s (%d)", swatch(p.Color), p.Name, p.TaskCount)
		parts = append(parts, tab(label, sel == p.ID))
	}
	line := strings.Join(parts, " ")
	if xansi.StringWidth(line) > m.width {
		line = xansi.Truncate(line, m.width, "…")
	}
	return line
}

func (m boardModel) viewFilters() string {
	f := m.b.Filters()
	search := "-"
	if f.Search != "" {
		search = fmt.Sprintf("%q", f.Search)
	}
	return mutedStyle.Render(fmt.Sprintf("status: %s  priority: %s  search: %s", f.Status, f.Priority, search))
}

func (m boardModel) viewTasks() string {
	if len(m.tasks) == 0 {
		return mutedStyle.Render("No tasks. Press a to add one.") + strings.Repeat("\n", m.listRows()-1)
	}
	projects := map[string]model.Project{}
	for _, p := range m.b.Projects() {
		projects[p.ID] = p
	}
	now := time.Now()

	rows := m.listRows()
	end := min(len(m.tasks), m.offset+rows)
	lines := make([]string, 0, rows)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.taskRow(m.tasks[i], projects, now, i == m.cursor))
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) taskRow(t model.Task, projects map[string]model.Project, now time.Time, selected bool) string {
	var meta []string
	meta = append(meta, priorityStyle(t.Priority).Render(string(t.Priority)))
	if p, ok := projects[t.ProjectID]; ok && m.b.SelectedProjectID() == model.All {
		meta = append(meta, swatch(p.Color)+" "+p.Name)
	}
	if t.DueDate != nil {
		due := t.DueDate.Format("Jan 2")
		if t.Overdue(now) {
			due = overdueStyle.Render(due + " overdue")
		} else {
			due = mutedStyle.Render(due)
		}
		meta = append(meta, due)
	}
	if t.Assignee != "" {
		meta = append(meta, mutedStyle.Render("@"+t.Assignee))
	}
	metaStr := strings.Join(meta, "  ")

	cursor := "  "
	if selected {
		cursor = "> "
	}
	prefix := cursor + statusGlyph(t.Status) + " "
	titleW := max(10, m.width-xansi.StringWidth(prefix)-xansi.StringWidth(metaStr)-2)
	title := xansi.Truncate(t.Title, titleW, "…")
	if t.Completed() {
		title = doneStyle.Render(title)
	}
	gap := max(2, m.width-xansi.StringWidth(prefix)-xansi.StringWidth(title)-xansi.StringWidth(metaStr))
	row := prefix + title + strings.Repeat(" ", gap) + metaStr
	if selected {
		row = selectedStyle.Render(row)
	}
	return row
}

func (m boardModel) viewStats() string {
	a := m.b.Analytics()
	bar := progressBar(a.CompletionRate, 20)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		mutedStyle.Render(fmt.Sprintf("total %d · done %d · in progress %d · overdue %d  ", a.Total, a.Completed, a.InProgress, a.Overdue)),
		bar,
		mutedStyle.Render(fmt.Sprintf(" %d%%", a.CompletionRate)),
	)
}

func progressBar(pct, width int) string {
	filled := pct * width / 100
	return lipgloss.NewStyle().Foreground(colorDone).Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
}

func (m boardModel) viewHelp() string {
	if m.mode != modeNormal {
		return mutedStyle.Render("enter: confirm  esc: cancel")
	}
	return mutedStyle.Render("j/k: move  J/K: reorder  space: advance  x: delete  tab: project  s: status  p: priority  /: search  c: clear  a: add  q: quit")
}

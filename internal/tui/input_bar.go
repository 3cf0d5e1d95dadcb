package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// inputBar renders the add or search line across the full board width: the
// text field on the left and, right-aligned, where a new task will land or how
// many tasks the search currently matches. The hint is dropped before the field
// is cut.
func (m boardModel) inputBar() string {
	width := max(20, m.width)

	field := " " + strings.NewReplacer("\n", " ", "\r", " ").Replace(m.input.View())
	hint := mutedStyle.Render(m.inputHint()) + " "

	fieldW, hintW := xansi.StringWidth(field), xansi.StringWidth(hint)
	var line string
	switch {
	case fieldW+1+hintW <= width:
		line = field + strings.Repeat(" ", width-fieldW-hintW) + hint
	case fieldW <= width:
		line = field
	default:
		line = xansi.Truncate(field, width, "…") + "\x1b[0m"
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Left, line,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
}

func (m boardModel) inputHint() string {
	switch m.mode {
	case modeAdd:
		name := m.newTaskProject()
		if p, ok := m.b.Project(name); ok {
			name = p.Name
		}
		return "adds to " + name
	case modeSearch:
		if len(m.tasks) == 1 {
			return "1 match"
		}
		return fmt.Sprintf("%d matches", len(m.tasks))
	}
	return ""
}

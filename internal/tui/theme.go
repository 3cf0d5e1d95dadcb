package tui

import (
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/model"
)

// The board must stay readable on light and dark terminals, so chrome colors are
// adaptive. Project colors come from user data and are used as-is.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      = ac("240", "243")
	colorAccent     = ac("27", "62")
	colorAccentFg   = ac("255", "235")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorInputBg    = ac("254", "234")
	colorOverdue    = ac("#b91c1c", "#f87171")
	colorDone       = ac("#15803d", "#50fa7b")

	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	tabStyle      = lipgloss.NewStyle().Padding(0, 1)
	tabActive     = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorAccentFg).Background(colorAccent)
	selectedStyle = lipgloss.NewStyle().Background(colorSelectedBg).Bold(true)
	overdueStyle  = lipgloss.NewStyle().Foreground(colorOverdue).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	doneGlyph     = lipgloss.NewStyle().Foreground(colorDone)
	flashStyle    = lipgloss.NewStyle().Foreground(colorAccent).Italic(true)
)

func priorityStyle(p model.Priority) lipgloss.Style {
	switch p {
	case model.PriorityUrgent:
		return lipgloss.NewStyle().Foreground(ac("#b91c1c", "#f87171")).Bold(true)
	case model.PriorityHigh:
		return lipgloss.NewStyle().Foreground(ac("#c2410c", "#fb923c"))
	case model.PriorityMedium:
		return lipgloss.NewStyle().Foreground(ac("#a16207", "#facc15"))
	default:
		return mutedStyle
	}
}

func swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}

func statusGlyph(s model.Status) string {
	switch s {
	case model.StatusCompleted:
		return doneGlyph.Render("[x]")
	case model.StatusInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}

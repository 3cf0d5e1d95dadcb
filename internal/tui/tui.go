package tui

import (
	"bytes"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"taskboard/internal/board"
)

// Run drives b interactively until the user quits. Log output is held back while
// the alternate screen is active and flushed to stderr afterwards.
func Run(b *board.Board, logger *log.Logger) error {
	var held bytes.Buffer
	if logger != nil {
		logger.SetOutput(&held)
		defer func() {
			logger.SetOutput(os.Stderr)
			_, _ = io.Copy(os.Stderr, &held)
		}()
	}

	m := newBoardModel(b)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

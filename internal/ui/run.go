package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the progress TUI while work executes and returns work's error
// unchanged so callers can map it to an exit code.
func Run(ctx context.Context, title string, verbose bool, work WorkFunc) error {
	m := NewModel(ctx, title, verbose, work)
	prog := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := prog.Run()
	if fm, ok := final.(Model); ok && fm.finished {
		return fm.workErr
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}

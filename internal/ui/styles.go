package ui

import (
	"github.com/charmbracelet/lipgloss"

	"ytclip/internal/progress"
)

var (
	colorAccent = lipgloss.Color("#7D56F4")
	colorCyan   = lipgloss.Color("#22D3EE")
	colorGreen  = lipgloss.Color("#22C55E")
	colorRed    = lipgloss.Color("#EF4444")
	colorMuted  = lipgloss.Color("#A3A3A3")
	colorText   = lipgloss.Color("#D1D5DB")
)

// Styles holds the lipgloss styles used by the progress view.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Target   lipgloss.Style
	Status   lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Faint    lipgloss.Style
	Box      lipgloss.Style
	Spinner  lipgloss.Style

	stages map[progress.Stage]lipgloss.Style
}

func defaultStyles() Styles {
	base := lipgloss.NewStyle()
	s := Styles{
		Title:    base.Bold(true).Foreground(colorAccent),
		Subtitle: base.Faint(true),
		Target:   base.Foreground(colorMuted),
		Status:   base.Foreground(colorText),
		Success:  base.Foreground(colorGreen),
		Error:    base.Foreground(colorRed),
		Faint:    base.Faint(true),
		Box:      base.Padding(0, 1),
		Spinner:  base.Foreground(colorCyan),
	}
	s.stages = map[progress.Stage]lipgloss.Style{
		progress.StageValidate:    base.Foreground(lipgloss.Color("#60A5FA")),
		progress.StageMetadata:    base.Foreground(lipgloss.Color("#60A5FA")),
		progress.StageDownloading: base.Foreground(lipgloss.Color("#06B6D4")),
		progress.StageEncoding:    base.Foreground(lipgloss.Color("#D946EF")),
		progress.StagePublishing:  base.Foreground(lipgloss.Color("#F59E0B")),
		progress.StageCompleted:   s.Success,
		progress.StageError:       s.Error,
	}
	return s
}

// Stage returns the style for a stage label.
func (s Styles) Stage(st progress.Stage) lipgloss.Style {
	if style, ok := s.stages[st]; ok {
		return style
	}
	return s.Status
}

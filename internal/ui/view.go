package ui

import (
	"fmt"
	"strings"

	"ytclip/internal/progress"
)

func (m Model) viewHeader() string {
	title := m.styles.Title.Render("ytclip")
	hint := "q: cancel"
	if m.cancelling {
		hint = "cancelling..."
	}
	sub := m.styles.Subtitle.Render(fmt.Sprintf("%s • %s", truncate(m.job.title, 60), hint))
	return title + "\n" + sub
}

func (m Model) viewJob() string {
	js := m.job
	line1 := m.styles.Stage(js.stage).Render(string(js.stage))
	if t := displayTarget(js.target); t != "" && js.stage == progress.StageEncoding {
		line1 += "  " + m.styles.Target.Render(t)
	}

	var right string
	switch {
	case js.done && js.err == nil:
		right = m.styles.Success.Render("✓ done")
	case js.err != nil:
		right = m.styles.Error.Render("✗ error")
	case js.percent >= 0 && js.percent <= 100:
		right = fmt.Sprintf("%s %5.1f%%", js.bar.ViewAs(js.percent/100.0), js.percent)
	default:
		right = m.styles.Spinner.Render(js.spinner.View()) + " " + m.styles.Faint.Render("working")
	}

	body := line1 + "\n" + right + "\n" + m.styles.Status.Render(js.status)
	if m.verbose && len(js.logsRing) > 0 {
		body += "\n" + m.styles.Faint.Render(strings.Join(js.logsRing, "\n"))
	}
	return m.styles.Box.Render(body)
}

func (m Model) viewSummary() string {
	js := m.job
	if !js.done || js.err != nil || len(js.outputs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("✓ Completed Files:"))
	b.WriteString("\n")
	for _, path := range js.outputs {
		b.WriteString(m.styles.Success.Render("  • " + path))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if n <= 0 || len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}

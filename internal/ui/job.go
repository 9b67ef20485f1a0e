package ui

import (
	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"

	"ytclip/internal/progress"
)

const logRingSize = 5

type jobState struct {
	id     string
	title  string
	stage  progress.Stage
	status string
	target string
	err    error
	done   bool

	outputs []string
	bytes   int64
	percent float64 // -1 means unknown

	spinner spinner.Model
	bar     bubblesprogress.Model

	logsRing []string
}

func newJobState(title string, styles Styles) jobState {
	sp := spinner.New()
	sp.Style = styles.Spinner
	bar := bubblesprogress.New(
		bubblesprogress.WithDefaultGradient(),
		bubblesprogress.WithWidth(40),
	)
	return jobState{
		title:   title,
		stage:   progress.StageValidate,
		status:  "Starting",
		percent: -1,
		spinner: sp,
		bar:     bar,
	}
}

func (js *jobState) pushLog(line string) {
	if len(js.logsRing) >= logRingSize {
		js.logsRing = js.logsRing[1:]
	}
	js.logsRing = append(js.logsRing, line)
}

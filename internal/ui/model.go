package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ytclip/internal/progress"
	"ytclip/internal/util/format"
)

// WorkFunc performs the clip run, reporting through rep.
type WorkFunc func(ctx context.Context, rep progress.Reporter) error

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	work       WorkFunc
	job        *jobState
	verbose    bool
	cancelling bool
	workErr    error
	finished   bool

	width  int
	styles Styles

	// Internal event channel used by reporter to feed tea messages
	eventCh chan tea.Msg
}

func NewModel(ctx context.Context, title string, verbose bool, work WorkFunc) Model {
	c, cancel := context.WithCancel(ctx)
	sty := defaultStyles()
	js := newJobState(title, sty)
	return Model{
		ctx:     c,
		cancel:  cancel,
		work:    work,
		job:     &js,
		verbose: verbose,
		styles:  sty,
		eventCh: make(chan tea.Msg, 256),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.job.spinner.Tick, m.listenEventsCmd(), m.startWorkCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			// Wait for the work to unwind so temp files are cleaned up.
			m.cancel()
			m.cancelling = true
			m.job.status = "Cancelling..."
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case jobUpdateMsg:
		u := msg.U
		js := m.job
		if u.Target != "" {
			js.target = u.Target
		}
		js.stage = u.Stage
		js.percent = u.Percent
		if u.Message != "" {
			js.status = u.Message
		}
		if u.Bytes != nil {
			js.bytes = *u.Bytes
		}
	case jobLogMsg:
		m.job.pushLog(strings.TrimRight(msg.L.Line, "\r\n"))
	case jobResultMsg:
		r := msg.R
		js := m.job
		js.done = true
		js.err = r.Err
		js.outputs = r.Outputs
		if r.Err == nil {
			js.stage = progress.StageCompleted
			js.percent = 100
			js.bytes = r.Bytes
			js.status = fmt.Sprintf("Saved %d file(s) (%s)", len(r.Outputs), format.HumanizeBytes(r.Bytes))
		} else {
			js.stage = progress.StageError
			js.status = r.Err.Error()
			js.percent = -1
		}
	case workDoneMsg:
		m.finished = true
		m.workErr = msg.Err
		return m, tea.Quit
	}

	var cmds []tea.Cmd
	var c tea.Cmd
	m.job.spinner, c = m.job.spinner.Update(msg)
	if c != nil {
		cmds = append(cmds, c)
	}
	// Each reporter event re-arms exactly one listener.
	switch msg.(type) {
	case jobUpdateMsg, jobLogMsg, jobResultMsg:
		cmds = append(cmds, m.listenEventsCmd())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	summary := m.viewSummary()
	out := m.viewHeader() + "\n\n" + m.viewJob()
	if summary != "" {
		out += "\n" + summary
	}
	return out
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		return <-m.eventCh
	}
}

func (m Model) startWorkCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.work(m.ctx, teaReporter{ch: m.eventCh})
		return workDoneMsg{Err: err}
	}
}

func displayTarget(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

type teaReporter struct {
	ch chan tea.Msg
}

func (r teaReporter) Update(u progress.Update) {
	// Block on terminal stages so they are never dropped.
	if u.Stage == progress.StageCompleted || u.Stage == progress.StageError {
		r.ch <- jobUpdateMsg{U: u}
		return
	}
	select {
	case r.ch <- jobUpdateMsg{U: u}:
	default:
	}
}

func (r teaReporter) Log(l progress.Log) {
	select {
	case r.ch <- jobLogMsg{L: l}:
	default:
	}
}

func (r teaReporter) Result(res progress.Result) {
	r.ch <- jobResultMsg{R: res}
}

package util

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// CmdSpec describes a subprocess to run.
type CmdSpec struct {
	Path    string   // binary path
	Args    []string // arguments
	Env     []string // extra KEY=VALUE pairs appended to the inherited environment
	Dir     string   // working directory; empty = inherit
	Verbose bool     // log the command line at debug level

	StdoutLine    func(string) // called for each stdout line
	StderrLine    func(string) // called for each stderr line
	CaptureStdout bool         // buffer stdout even when StdoutLine is set
}

// CmdRunner executes a CmdSpec. Tests substitute fakes that simulate the
// external tools.
type CmdRunner interface {
	Run(ctx context.Context, spec CmdSpec) (CmdResult, error)
}

// CmdResult contains captured output and exit status.
type CmdResult struct {
	Stdout []byte
	Stderr []byte
	Code   int
	Err    error
}

const (
	// yt-dlp --dump-json prints a single line that can pass 1 MiB.
	maxStdoutLine = 4 << 20
	maxStderrLine = 1 << 20

	// interruptGrace is how long a cancelled tool gets to exit after SIGINT
	// before it is killed. ffmpeg finalizes its output on SIGINT.
	interruptGrace = 5 * time.Second
)

// DefaultRunner runs real subprocesses.
type DefaultRunner struct {
	log zerolog.Logger
}

// NewDefaultRunner returns a runner that logs nothing.
func NewDefaultRunner() DefaultRunner {
	return DefaultRunner{log: zerolog.Nop()}
}

// NewLoggingRunner returns a runner that writes verbose specs to log.
func NewLoggingRunner(log zerolog.Logger) DefaultRunner {
	return DefaultRunner{log: log}
}

// Run starts the command and waits for it. Stderr is always captured.
// Stdout is captured when CaptureStdout is set or no StdoutLine callback is
// given. A non-zero exit returns an error naming the tool and code, with the
// result still populated.
func (r DefaultRunner) Run(ctx context.Context, spec CmdSpec) (CmdResult, error) {
	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	cmd.Dir = spec.Dir
	if spec.Env != nil {
		cmd.Env = append(os.Environ(), spec.Env...)
	}
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = interruptGrace

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return CmdResult{Code: -1, Err: err}, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return CmdResult{Code: -1, Err: err}, err
	}

	tool := filepath.Base(spec.Path)
	if spec.Verbose {
		r.log.Debug().Str("tool", tool).Str("cmd", ShellQuote(spec.Path, spec.Args)).Msg("exec")
	}
	if err := cmd.Start(); err != nil {
		return CmdResult{Code: -1, Err: err}, err
	}

	var outBuf, errBuf bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var capture *bytes.Buffer
		if spec.CaptureStdout || spec.StdoutLine == nil {
			capture = &outBuf
		}
		scanLines(stdout, maxStdoutLine, capture, spec.StdoutLine)
	}()
	go func() {
		defer wg.Done()
		scanLines(stderr, maxStderrLine, &errBuf, spec.StderrLine)
	}()
	// Pipes must be drained before Wait closes them.
	wg.Wait()
	waitErr := cmd.Wait()

	res := CmdResult{Stdout: outBuf.Bytes(), Stderr: errBuf.Bytes(), Err: waitErr}
	if waitErr == nil {
		return res, nil
	}
	res.Code = -1
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		res.Code = exitErr.ExitCode()
	}
	return res, fmt.Errorf("%s exited with code %d: %w", tool, res.Code, waitErr)
}

// scanLines feeds every line of rd to sink and capture, either may be nil.
func scanLines(rd io.Reader, max int, capture *bytes.Buffer, sink func(string)) {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, min(64*1024, max)), max)
	for sc.Scan() {
		line := sc.Text()
		if sink != nil {
			sink(line)
		}
		if capture != nil {
			capture.WriteString(line)
			capture.WriteByte('\n')
		}
	}
	// An over-long line stops the scan; keep draining so the child never
	// blocks on a full pipe.
	if sc.Err() != nil {
		_, _ = io.Copy(io.Discard, rd)
	}
}

// ShellQuote returns a printable shell-like command string for logs and plans.
func ShellQuote(path string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quote(path))
	for _, a := range args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.ContainsAny(s, " \t\n\"'\\$`(){}[]*&;|<>?!") {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return s
}

// StderrTail returns the last n non-empty stderr lines, joined by newlines.
func (r CmdResult) StderrTail(n int) string {
	lines := strings.Split(strings.TrimRight(string(r.Stderr), "\n"), "\n")
	var kept []string
	for i := len(lines) - 1; i >= 0 && len(kept) < n; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			kept = append([]string{l}, kept...)
		}
	}
	return strings.Join(kept, "\n")
}

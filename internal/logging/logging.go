// Package logging provides the zerolog setup and a progress.Reporter that
// writes structured events when no interactive UI is attached.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Field names shared by every event.
const (
	FieldJobID  = "job_id"
	FieldStage  = "stage"
	FieldTarget = "target"
	FieldStream = "stream"
	FieldBytes  = "bytes"
)

// New returns a console logger writing to w. Verbose lowers the level to debug.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// NewJSON returns a machine-readable logger, used when --log-format=json.
func NewJSON(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

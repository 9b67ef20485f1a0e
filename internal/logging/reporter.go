package logging

import (
	"sync"

	"github.com/rs/zerolog"

	"ytclip/internal/progress"
	"ytclip/internal/util/format"
)

// percentStep throttles repeated progress events for the same stage.
const percentStep = 25.0

// Reporter logs progress events. Stage changes and completions are logged at
// info; intermediate percentages every percentStep at debug.
type Reporter struct {
	log zerolog.Logger

	mu      sync.Mutex
	lastKey string
	lastPct float64
}

// NewReporter wraps log as a progress.Reporter.
func NewReporter(log zerolog.Logger) *Reporter {
	return &Reporter{log: log, lastPct: -1}
}

func (r *Reporter) Update(u progress.Update) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := string(u.Stage) + "|" + u.Target
	if key != r.lastKey {
		r.lastKey = key
		r.lastPct = -1
		if u.Stage != progress.StageError {
			ev := r.log.Info().Str(FieldJobID, u.JobID).Str(FieldStage, string(u.Stage))
			if u.Target != "" {
				ev = ev.Str(FieldTarget, u.Target)
			}
			ev.Msg(u.Message)
		}
	}

	switch {
	case u.Stage == progress.StageError:
		r.log.Error().Str(FieldJobID, u.JobID).Msg(u.Message)
	case u.Percent >= 100 && r.lastPct < 100:
		r.lastPct = 100
		r.log.Info().Str(FieldJobID, u.JobID).Str(FieldStage, string(u.Stage)).Msg(u.Message)
	case u.Percent >= 0 && u.Percent-r.lastPct >= percentStep:
		r.lastPct = u.Percent
		ev := r.log.Debug().Str(FieldJobID, u.JobID).Str(FieldStage, string(u.Stage)).Float64("percent", u.Percent)
		if u.Speed != nil {
			ev = ev.Str("speed", *u.Speed)
		}
		ev.Msg(u.Message)
	}
}

func (r *Reporter) Log(l progress.Log) {
	stream := "stdout"
	if l.Stream == progress.StreamStderr {
		stream = "stderr"
	}
	r.log.Debug().Str(FieldJobID, l.JobID).Str(FieldStream, stream).Msg(l.Line)
}

func (r *Reporter) Result(res progress.Result) {
	if res.Err != nil {
		return
	}
	r.log.Info().
		Str(FieldJobID, res.JobID).
		Strs("outputs", res.Outputs).
		Int64(FieldBytes, res.Bytes).
		Msgf("finished, %s written", format.HumanizeBytes(res.Bytes))
}

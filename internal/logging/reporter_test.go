package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"ytclip/internal/progress"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("bad json %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestReporter_ThrottlesPercent(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(NewJSON(&buf, true))

	r.Update(progress.Update{JobID: "j", Stage: progress.StageDownloading, Percent: -1, Message: "Downloading source"})
	for _, p := range []float64{1, 5, 10, 26, 30, 51, 77, 100, 100} {
		r.Update(progress.Update{JobID: "j", Stage: progress.StageDownloading, Percent: p, Message: "Downloading"})
	}
	lines := decodeLines(t, &buf)
	// stage change, then 26, 51, 77, 100
	if len(lines) != 5 {
		t.Fatalf("got %d events: %s", len(lines), buf.String())
	}
	if lines[0]["stage"] != "downloading" || lines[0]["level"] != "info" {
		t.Errorf("first event = %v", lines[0])
	}
}

func TestReporter_NewTargetResetsThrottle(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(NewJSON(&buf, false))
	r.Update(progress.Update{Stage: progress.StageEncoding, Target: "a.mp4", Percent: 100, Message: "Encoding a.mp4"})
	r.Update(progress.Update{Stage: progress.StageEncoding, Target: "b.webm", Percent: 100, Message: "Encoding b.webm"})
	lines := decodeLines(t, &buf)
	var targets []string
	for _, l := range lines {
		if v, ok := l["target"].(string); ok {
			targets = append(targets, v)
		}
	}
	if len(targets) != 2 || targets[0] != "a.mp4" || targets[1] != "b.webm" {
		t.Errorf("targets = %v (%s)", targets, buf.String())
	}
}

func TestReporter_LogsOnlyWhenVerbose(t *testing.T) {
	var quiet, loud bytes.Buffer
	NewReporter(NewJSON(&quiet, false)).Log(progress.Log{JobID: "j", Line: "frame=1"})
	NewReporter(NewJSON(&loud, true)).Log(progress.Log{JobID: "j", Stream: progress.StreamStderr, Line: "frame=1"})
	if quiet.Len() != 0 {
		t.Errorf("non-verbose logger wrote %q", quiet.String())
	}
	if !strings.Contains(loud.String(), `"stream":"stderr"`) {
		t.Errorf("verbose output = %q", loud.String())
	}
}

func TestReporter_Result(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(NewJSON(&buf, false))
	r.Result(progress.Result{JobID: "j", Outputs: []string{"out.mp4"}, Bytes: 1536})
	r.Result(progress.Result{JobID: "j", Err: errors.New("boom")})
	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d events", len(lines))
	}
	if lines[0]["message"] != "finished, 1.5 KiB written" {
		t.Errorf("message = %v", lines[0]["message"])
	}
}

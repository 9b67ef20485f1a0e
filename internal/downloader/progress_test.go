package downloader

import (
	"testing"
	"time"

	"ytclip/internal/progress"
)

func TestParseProgress(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantOK    bool
		wantPct   float64
		wantSpeed string
		wantETA   time.Duration
		wantBytes int64
		wantMsg   string
	}{
		{
			name:      "typical line",
			line:      "[download]  50.0% of 10.00MiB at  1.50MiB/s ETA 00:04",
			wantOK:    true,
			wantPct:   50,
			wantSpeed: "1.50MiB/s",
			wantETA:   4 * time.Second,
			wantBytes: 5 * 1024 * 1024,
			wantMsg:   "Downloading",
		},
		{
			name:      "estimated size with fragments",
			line:      "[download]  10.0% of ~  2.00KiB at  3.00KiB/s ETA 01:02:03 (frag 1/10)",
			wantOK:    true,
			wantPct:   10,
			wantSpeed: "3.00KiB/s",
			wantETA:   1*time.Hour + 2*time.Minute + 3*time.Second,
			wantBytes: 204,
			wantMsg:   "Downloading",
		},
		{
			name:    "unknown speed and eta",
			line:    "[download]   0.3% of 1.00GiB at Unknown B/s ETA Unknown",
			wantOK:  true,
			wantPct: 0.3,
			wantMsg: "Downloading",
		},
		{
			name:    "destination line",
			line:    "[download] Destination: /tmp/job/My Clip.f137.mp4",
			wantOK:  true,
			wantPct: 0,
			wantMsg: "Downloading My Clip.f137.mp4",
		},
		{
			name:    "merger line",
			line:    `[Merger] Merging formats into "/tmp/job/My Clip.mp4"`,
			wantOK:  true,
			wantPct: 100,
			wantMsg: "Merging formats",
		},
		{name: "info line", line: "[youtube] dQw4w9WgXcQ: Downloading webpage"},
		{name: "empty", line: ""},
		{name: "no percent", line: "[download] Got server HTTP error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, ok := ParseProgress(tt.line, "job1")
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if u.JobID != "job1" || u.Stage != progress.StageDownloading {
				t.Errorf("JobID/Stage = %q/%q", u.JobID, u.Stage)
			}
			if u.Percent != tt.wantPct {
				t.Errorf("Percent = %v, want %v", u.Percent, tt.wantPct)
			}
			if u.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", u.Message, tt.wantMsg)
			}
			switch {
			case tt.wantSpeed == "" && u.Speed != nil:
				t.Errorf("Speed = %q, want none", *u.Speed)
			case tt.wantSpeed != "" && (u.Speed == nil || *u.Speed != tt.wantSpeed):
				t.Errorf("Speed = %v, want %q", u.Speed, tt.wantSpeed)
			}
			switch {
			case tt.wantETA == 0 && u.ETA != nil:
				t.Errorf("ETA = %v, want none", *u.ETA)
			case tt.wantETA != 0 && (u.ETA == nil || *u.ETA != tt.wantETA):
				t.Errorf("ETA = %v, want %v", u.ETA, tt.wantETA)
			}
			if tt.wantBytes != 0 && (u.Bytes == nil || *u.Bytes != tt.wantBytes) {
				t.Errorf("Bytes = %v, want %d", u.Bytes, tt.wantBytes)
			}
		})
	}
}

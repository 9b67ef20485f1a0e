package pipeline

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"ytclip/internal/model"
)

func TestBuildPlan_Video(t *testing.T) {
	base := filepath.Join(t.TempDir(), "out")
	pl, err := BuildPlan(baseOptions(base), "", "")
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if pl.URL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("URL = %q", pl.URL)
	}
	if pl.Range.Duration() != 7 || pl.OutputDuration != 7 {
		t.Errorf("range = %+v, output duration = %v", pl.Range, pl.OutputDuration)
	}
	if len(pl.EncodeCmds) != 2 {
		t.Fatalf("EncodeCmds = %v", pl.EncodeCmds)
	}
	if !strings.HasPrefix(pl.EncodeCmds[0], "ffmpeg ") || !strings.HasSuffix(pl.EncodeCmds[0], base+".mp4") {
		t.Errorf("mp4 cmd = %s", pl.EncodeCmds[0])
	}
	if !strings.HasSuffix(pl.EncodeCmds[1], base+".webm") {
		t.Errorf("webm cmd = %s", pl.EncodeCmds[1])
	}
	if !strings.HasPrefix(pl.DownloadCmd, "yt-dlp ") || !strings.Contains(pl.DownloadCmd, "'bv*+ba/b'") {
		t.Errorf("download cmd = %s", pl.DownloadCmd)
	}
	if pl.Filter != "fps=8,scale=320:trunc(ow/a/2)*2:flags=lanczos" {
		t.Errorf("filter = %s", pl.Filter)
	}
}

func TestBuildPlan_RelativeOutputIsAbsolute(t *testing.T) {
	pl, err := BuildPlan(baseOptions(""), "yt-dlp", "ffmpeg")
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	for _, p := range pl.Targets.Paths {
		if !filepath.IsAbs(p) {
			t.Errorf("target %q should be absolute", p)
		}
	}
	if filepath.Base(pl.Targets.Paths[0]) != "clip.mp4" {
		t.Errorf("default base = %v", pl.Targets.Paths)
	}
}

func TestBuildPlan_SpeedHalvesDuration(t *testing.T) {
	o := baseOptions("out")
	o.Params.Speed = 2
	pl, err := BuildPlan(o, "", "")
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if pl.OutputDuration != 3.5 {
		t.Errorf("OutputDuration = %v, want 3.5", pl.OutputDuration)
	}
	if !strings.HasPrefix(pl.Filter, "setpts=PTS/2,") {
		t.Errorf("filter = %s", pl.Filter)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		mut  func(o *model.Options)
		want error
	}{
		{"bad url", func(o *model.Options) { o.URL = "not a url" }, model.ErrInvalidArgument},
		{"bad start", func(o *model.Options) { o.Start = "abc" }, model.ErrInvalidFormat},
		{"end before start", func(o *model.Options) { o.End = "0:01" }, model.ErrInvalidRange},
		{"zero width", func(o *model.Options) { o.Params.Width = 0 }, model.ErrInvalidArgument},
		{"NaN speed", func(o *model.Options) { o.Params.Speed = math.NaN() }, model.ErrInvalidArgument},
		{"infinite speed", func(o *model.Options) { o.Params.Speed = math.Inf(1) }, model.ErrInvalidArgument},
		{"bad publish", func(o *model.Options) { o.Publish = "ftp://x" }, model.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := baseOptions("out")
			tt.mut(&o)
			_, _, _, err := Validate(o)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

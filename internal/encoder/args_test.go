package encoder

import (
	"strings"
	"testing"

	"ytclip/internal/model"
)

func sampleJob(out string) Job {
	return Job{
		Input:  "/tmp/work/source.mp4",
		Range:  model.TimeRange{Start: 2, End: 9},
		Params: model.RenderParams{Width: 320, FPS: 8, Speed: 1, Quality: model.QualityHigh, MaxColors: 64},
		Output: out,
	}
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name            string
		job             Job
		includeProgress bool
		wantSeq         []string // must appear in this order, adjacent
		wantContains    []string
		wantNotContains []string
	}{
		{
			name:    "mp4 high",
			job:     sampleJob("/out/out.mp4"),
			wantSeq: []string{"-y", "-nostdin", "-ss", "2.000", "-t", "7.000", "-i", "/tmp/work/source.mp4"},
			wantContains: []string{
				"-vf fps=8,scale=320:trunc(ow/a/2)*2:flags=lanczos",
				"-an", "-c:v libx264", "-pix_fmt yuv420p", "-preset slow", "-crf 18", "-movflags faststart",
			},
			wantNotContains: []string{"-progress", "libvpx", "palettegen"},
		},
		{
			name:            "webm high with progress",
			job:             sampleJob("/out/out.webm"),
			wantSeq:         []string{"-c:v", "libvpx-vp9", "-b:v", "0", "-crf", "28", "-preset", "slow"},
			includeProgress: true,
			wantContains:    []string{"-progress pipe:1 -nostats"},
			wantNotContains: []string{"libx264", "-movflags"},
		},
		{
			name:    "gif palette",
			job:     sampleJob("/out/clip.gif"),
			wantSeq: []string{"-loop", "0"},
			wantContains: []string{
				"-filter_complex fps=8,scale=320:trunc(ow/a/2)*2:flags=lanczos,split[a][b];[b]palettegen=max_colors=64[p];[a][p]paletteuse=dither=bayer",
			},
			wantNotContains: []string{"-vf", "-crf", "libx264"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := BuildArgs(tt.job, tt.includeProgress)
			if err != nil {
				t.Fatalf("BuildArgs: %v", err)
			}
			joined := strings.Join(args, " ")
			if len(tt.wantSeq) > 0 && !strings.Contains(joined, strings.Join(tt.wantSeq, " ")) {
				t.Errorf("args missing sequence %v, got: %v", tt.wantSeq, args)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(joined, want) {
					t.Errorf("args missing %q, got: %v", want, args)
				}
			}
			for _, notWant := range tt.wantNotContains {
				if strings.Contains(joined, notWant) {
					t.Errorf("args should not contain %q, got: %v", notWant, args)
				}
			}
			if args[len(args)-1] != tt.job.Output {
				t.Errorf("last arg = %v, want %v", args[len(args)-1], tt.job.Output)
			}
		})
	}
}

func TestBuildArgs_UnknownExtension(t *testing.T) {
	if _, err := BuildArgs(sampleJob("/out/clip.avi"), false); err == nil {
		t.Fatal("expected error for .avi")
	}
}

func TestBuildArgs_QualityLevels(t *testing.T) {
	for _, q := range []model.Quality{model.QualityLow, model.QualityMedium, model.QualityHigh} {
		j := sampleJob("/out/out.mp4")
		j.Params.Quality = q
		pr := PresetFor(q)
		joined := strings.Join(BuildMP4Args(j, false), " ")
		if !strings.Contains(joined, "-preset "+pr.Speed) {
			t.Errorf("%s: missing preset %s in %s", q, pr.Speed, joined)
		}
		j.Output = "/out/out.webm"
		joined = strings.Join(BuildWebMArgs(j, false), " ")
		if !strings.Contains(joined, "-b:v 0 -crf ") {
			t.Errorf("%s: webm should use constant quality: %s", q, joined)
		}
	}
}

func TestBuildArgs_SpeedLimitsInputWindow(t *testing.T) {
	j := sampleJob("/out/out.mp4")
	j.Params.Speed = 2
	args := BuildMP4Args(j, false)
	joined := strings.Join(args, " ")
	// The input window stays 7s; setpts halves the encoded length.
	if !strings.Contains(joined, "-t 7.000 -i") {
		t.Errorf("expected -t to bound the input, got %v", args)
	}
	if !strings.Contains(joined, "-vf setpts=PTS/2,fps=8") {
		t.Errorf("expected setpts prefix, got %v", args)
	}
}

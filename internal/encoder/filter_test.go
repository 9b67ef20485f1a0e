package encoder

import (
	"strings"
	"testing"

	"ytclip/internal/model"
)

func TestBuildVideoFilter(t *testing.T) {
	tests := []struct {
		name   string
		params model.RenderParams
		want   string
	}{
		{
			name:   "unit speed",
			params: model.RenderParams{Width: 320, FPS: 8, Speed: 1.0},
			want:   "fps=8,scale=320:trunc(ow/a/2)*2:flags=lanczos",
		},
		{
			name:   "near unit speed is untouched",
			params: model.RenderParams{Width: 320, FPS: 8, Speed: 1.0000001},
			want:   "fps=8,scale=320:trunc(ow/a/2)*2:flags=lanczos",
		},
		{
			name:   "double speed",
			params: model.RenderParams{Width: 480, FPS: 12, Speed: 2.0},
			want:   "setpts=PTS/2,fps=12,scale=480:trunc(ow/a/2)*2:flags=lanczos",
		},
		{
			name:   "slow motion",
			params: model.RenderParams{Width: 640, FPS: 24, Speed: 0.5},
			want:   "setpts=PTS/0.5,fps=24,scale=640:trunc(ow/a/2)*2:flags=lanczos",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildVideoFilter(tt.params); got != tt.want {
				t.Errorf("BuildVideoFilter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildGIFFilter(t *testing.T) {
	got := BuildGIFFilter(model.RenderParams{Width: 320, FPS: 8, Speed: 1, MaxColors: 64})
	want := "fps=8,scale=320:trunc(ow/a/2)*2:flags=lanczos,split[a][b];[b]palettegen=max_colors=64[p];[a][p]paletteuse=dither=bayer"
	if got != want {
		t.Errorf("BuildGIFFilter() = %q, want %q", got, want)
	}

	capped := BuildGIFFilter(model.RenderParams{Width: 320, FPS: 8, Speed: 1, MaxColors: 1000})
	if !strings.Contains(capped, "max_colors=256") {
		t.Errorf("colors should cap at 256: %q", capped)
	}
}

func TestScaledHeight_AlwaysEven(t *testing.T) {
	sources := [][2]int{{1920, 1080}, {1280, 720}, {1080, 1920}, {853, 480}, {720, 405}, {641, 359}}
	for _, w := range []int{97, 319, 320, 333, 480, 641, 1001} {
		for _, src := range sources {
			h := ScaledHeight(w, src[0], src[1])
			if h%2 != 0 {
				t.Errorf("ScaledHeight(%d, %dx%d) = %d, want even", w, src[0], src[1], h)
			}
			if h <= 0 {
				t.Errorf("ScaledHeight(%d, %dx%d) = %d, want positive", w, src[0], src[1], h)
			}
		}
	}
	if got := ScaledHeight(320, 1920, 1080); got != 180 {
		t.Errorf("ScaledHeight(320, 1920x1080) = %d, want 180", got)
	}
	if got := ScaledHeight(320, 0, 1080); got != 0 {
		t.Errorf("unknown source should give 0, got %d", got)
	}
}

func TestOutputDuration(t *testing.T) {
	r := model.TimeRange{Start: 2, End: 9}
	if got := OutputDuration(r, 1.0); got != 7 {
		t.Errorf("speed 1 duration = %v, want 7", got)
	}
	if got := OutputDuration(r, 2.0); got != 3.5 {
		t.Errorf("speed 2 duration = %v, want 3.5", got)
	}
	if got := OutputDuration(r, 0); got != 7 {
		t.Errorf("invalid speed should leave duration, got %v", got)
	}
}

func TestPresetFor(t *testing.T) {
	tests := []struct {
		q    model.Quality
		want Preset
	}{
		{model.QualityLow, Preset{MP4CRF: 28, WebMCRF: 34, Speed: "faster"}},
		{model.QualityMedium, Preset{MP4CRF: 23, WebMCRF: 30, Speed: "medium"}},
		{model.QualityHigh, Preset{MP4CRF: 18, WebMCRF: 28, Speed: "slow"}},
	}
	for _, tt := range tests {
		if got := PresetFor(tt.q); got != tt.want {
			t.Errorf("PresetFor(%s) = %+v, want %+v", tt.q, got, tt.want)
		}
	}
	// Higher quality means a smaller quantization step.
	if PresetFor(model.QualityHigh).MP4CRF >= PresetFor(model.QualityLow).MP4CRF {
		t.Error("high should use a lower CRF than low")
	}
}

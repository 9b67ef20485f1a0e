package model

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// Quality selects a codec compression preset.
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// ParseQuality validates a user-supplied quality name (case-insensitive).
func ParseQuality(s string) (Quality, error) {
	switch q := Quality(strings.ToLower(strings.TrimSpace(s))); q {
	case QualityLow, QualityMedium, QualityHigh:
		return q, nil
	default:
		return "", fmt.Errorf("invalid quality %q (valid: low|medium|high)", s)
	}
}

// OutputMode picks the output family.
type OutputMode string

const (
	ModeVideo OutputMode = "video" // MP4 + WebM
	ModeGIF   OutputMode = "gif"
)

// ParseMode validates an output mode name.
func ParseMode(s string) (OutputMode, error) {
	switch m := OutputMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeVideo, ModeGIF:
		return m, nil
	case "":
		return ModeVideo, nil
	default:
		return "", fmt.Errorf("invalid mode %q (valid: video|gif)", s)
	}
}

// Extensions returns the container extensions produced by the mode, in encode order.
func (m OutputMode) Extensions() []string {
	if m == ModeGIF {
		return []string{".gif"}
	}
	return []string{".mp4", ".webm"}
}

// TimeRange is a clip window in seconds. End is always greater than Start
// when built through timecode.NewRange.
type TimeRange struct {
	Start float64
	End   float64
}

// Duration returns End - Start.
func (r TimeRange) Duration() float64 {
	return r.End - r.Start
}

const (
	DefaultWidth     = 480
	DefaultFPS       = 12
	DefaultSpeed     = 1.0
	DefaultMaxColors = 128
	MaxPaletteColors = 256
)

// RenderParams controls the filter graph and codec presets.
type RenderParams struct {
	Width     int     // output width in px; height follows aspect ratio, rounded to even
	FPS       int     // output frame rate
	Speed     float64 // playback multiplier, 1.0 = unchanged
	Quality   Quality // video mode only
	MaxColors int     // gif mode only, 1..256
}

// DefaultRenderParams returns the CLI defaults.
func DefaultRenderParams() RenderParams {
	return RenderParams{
		Width:     DefaultWidth,
		FPS:       DefaultFPS,
		Speed:     DefaultSpeed,
		Quality:   QualityMedium,
		MaxColors: DefaultMaxColors,
	}
}

// Validate checks the params for the given mode.
func (p RenderParams) Validate(mode OutputMode) error {
	if p.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", p.Width)
	}
	if p.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", p.FPS)
	}
	if math.IsNaN(p.Speed) || math.IsInf(p.Speed, 0) || p.Speed <= 0 {
		return fmt.Errorf("speed must be a positive finite number, got %g", p.Speed)
	}
	if mode == ModeGIF {
		if p.MaxColors < 1 || p.MaxColors > MaxPaletteColors {
			return fmt.Errorf("colors must be within 1..%d, got %d", MaxPaletteColors, p.MaxColors)
		}
		return nil
	}
	if _, err := ParseQuality(string(p.Quality)); err != nil {
		return err
	}
	return nil
}

// SourceMedia is the file produced by the downloader for a single run.
type SourceMedia struct {
	Path  string
	Title string
	ID    string
}

// OutputTargets holds the destination files derived from a base path.
type OutputTargets struct {
	Base  string
	Paths []string
}

// NewOutputTargets strips any known extension from base and appends the
// extensions produced by mode.
func NewOutputTargets(base string, mode OutputMode) OutputTargets {
	if base == "" {
		base = "clip"
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".mp4", ".webm", ".gif":
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	exts := mode.Extensions()
	paths := make([]string, 0, len(exts))
	for _, ext := range exts {
		paths = append(paths, base+ext)
	}
	return OutputTargets{Base: base, Paths: paths}
}

// Options holds runtime options as assembled from flags, env and config.
type Options struct {
	URL      string
	Start    string
	End      string
	Output   string // base path; extensions are derived from Mode
	Mode     OutputMode
	Params   RenderParams
	KeepSrc  bool   // keep the downloaded source next to the caller
	KeepDir  string // where the kept source lands; empty = current directory
	Publish  string // optional s3://bucket/prefix or gs://bucket/prefix
	DLBinary string
	FFmpeg   string
	DryRun   bool
	Verbose  bool
	NoUI     bool
}

// OutputFile describes one encoded result.
type OutputFile struct {
	Path  string
	Bytes int64
}

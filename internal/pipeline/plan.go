package pipeline

import (
	"fmt"
	"path/filepath"

	"ytclip/internal/downloader"
	"ytclip/internal/encoder"
	"ytclip/internal/model"
	"ytclip/internal/publish"
	"ytclip/internal/timecode"
	"ytclip/internal/util"
)

// workdirPlaceholder stands in for the per-run temp dir in printed commands.
const workdirPlaceholder = "$WORKDIR"

// Plan is everything a run will do, computed without touching the network or
// spawning processes.
type Plan struct {
	URL     string // normalized
	Range   model.TimeRange
	Mode    model.OutputMode
	Params  model.RenderParams
	Targets model.OutputTargets
	Filter  string

	OutputDuration float64
	DownloadCmd    string
	EncodeCmds     []string
	Publish        string
}

// Validate checks every user-supplied value and returns the normalized
// URL, time range and targets. No external process is involved.
func Validate(o model.Options) (string, model.TimeRange, model.OutputTargets, error) {
	if _, _, err := util.DetectPlatform(o.URL); err != nil {
		return "", model.TimeRange{}, model.OutputTargets{}, fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)
	}
	r, err := timecode.ParseRange(o.Start, o.End)
	if err != nil {
		return "", model.TimeRange{}, model.OutputTargets{}, err
	}
	mode := o.Mode
	if mode == "" {
		mode = model.ModeVideo
	}
	if err := o.Params.Validate(mode); err != nil {
		return "", model.TimeRange{}, model.OutputTargets{}, fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)
	}
	if o.Publish != "" {
		if _, err := publish.ParseDestination(o.Publish); err != nil {
			return "", model.TimeRange{}, model.OutputTargets{}, fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)
		}
	}
	targets := absTargets(model.NewOutputTargets(o.Output, mode))
	return util.CanonicalWatchURL(o.URL), r, targets, nil
}

func absTargets(t model.OutputTargets) model.OutputTargets {
	if abs, err := filepath.Abs(t.Base); err == nil {
		t.Base = abs
	}
	for i, p := range t.Paths {
		if abs, err := filepath.Abs(p); err == nil {
			t.Paths[i] = abs
		}
	}
	return t
}

// BuildPlan computes the Plan for o. dlPath and ffmpegPath are only used for
// printing and may be bare program names.
func BuildPlan(o model.Options, dlPath, ffmpegPath string) (Plan, error) {
	u, r, targets, err := Validate(o)
	if err != nil {
		return Plan{}, err
	}
	mode := o.Mode
	if mode == "" {
		mode = model.ModeVideo
	}
	if dlPath == "" {
		dlPath = "yt-dlp"
	}
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	filter := encoder.BuildVideoFilter(o.Params)
	if mode == model.ModeGIF {
		filter = encoder.BuildGIFFilter(o.Params)
	}

	input := filepath.Join(workdirPlaceholder, "source.mp4")
	cmds := make([]string, 0, len(targets.Paths))
	for _, out := range targets.Paths {
		args, err := encoder.BuildArgs(encoder.Job{Input: input, Range: r, Params: o.Params, Output: out}, false)
		if err != nil {
			return Plan{}, err
		}
		cmds = append(cmds, util.ShellQuote(ffmpegPath, args))
	}

	return Plan{
		URL:            u,
		Range:          r,
		Mode:           mode,
		Params:         o.Params,
		Targets:        targets,
		Filter:         filter,
		OutputDuration: encoder.OutputDuration(r, o.Params.Speed),
		DownloadCmd:    util.ShellQuote(dlPath, downloader.BuildDownloadArgs(u, workdirPlaceholder)),
		EncodeCmds:     cmds,
		Publish:        o.Publish,
	}, nil
}

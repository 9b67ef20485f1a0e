package encoder

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"ytclip/internal/model"
	"ytclip/internal/progress"
	"ytclip/internal/util"
)

// Options control ffmpeg execution.
type Options struct {
	FFmpegPath string
	Verbose    bool
	Runner     util.CmdRunner
	Reporter   progress.Reporter
	JobID      string
}

// Encode runs ffmpeg once for j. A non-zero exit is reported as
// model.ErrEncodeFailed and any partial output is removed.
func Encode(ctx context.Context, j Job, opts Options) (model.OutputFile, error) {
	if opts.FFmpegPath == "" {
		return model.OutputFile{}, errors.New("ffmpeg path is required")
	}
	if j.Input == "" {
		return model.OutputFile{}, errors.New("input path is required")
	}
	if j.Output == "" {
		return model.OutputFile{}, errors.New("output path is required")
	}
	if j.Range.Duration() <= 0 {
		return model.OutputFile{}, fmt.Errorf("%w: non-positive duration %.3f", model.ErrInvalidRange, j.Range.Duration())
	}

	rep := opts.Reporter
	if rep == nil {
		rep = progress.Nop{}
	}
	runner := opts.Runner
	if runner == nil {
		runner = util.NewDefaultRunner()
	}

	args, err := BuildArgs(j, true)
	if err != nil {
		return model.OutputFile{}, err
	}
	if err := util.EnsureDir(filepath.Dir(j.Output)); err != nil {
		return model.OutputFile{}, fmt.Errorf("ensure output dir: %w", err)
	}

	name := filepath.Base(j.Output)
	outDur := OutputDuration(j.Range, j.Params.Speed)
	rep.Update(progress.Update{
		JobID:   opts.JobID,
		Stage:   progress.StageEncoding,
		Percent: 0,
		Target:  j.Output,
		Message: "Encoding " + name,
	})

	ps := &ProgressState{}
	res, runErr := runner.Run(ctx, util.CmdSpec{
		Path:    opts.FFmpegPath,
		Args:    args,
		Verbose: opts.Verbose,
		StdoutLine: func(line string) {
			if u, ok := ps.UpdateFromLine(line, opts.JobID, outDur); ok {
				u.Target = j.Output
				u.Message = "Encoding " + name
				rep.Update(u)
			}
		},
		StderrLine: func(line string) {
			if opts.Verbose {
				rep.Log(progress.Log{JobID: opts.JobID, Stream: progress.StreamStderr, Line: line})
			}
		},
	})
	if runErr != nil {
		_ = util.RemoveIfExists(j.Output)
		if tail := res.StderrTail(5); tail != "" {
			return model.OutputFile{}, fmt.Errorf("%w: %s: %v\n%s", model.ErrEncodeFailed, name, runErr, tail)
		}
		return model.OutputFile{}, fmt.Errorf("%w: %s: %v", model.ErrEncodeFailed, name, runErr)
	}

	size, err := util.FileSize(j.Output)
	if err != nil {
		return model.OutputFile{}, fmt.Errorf("%w: stat output: %v", model.ErrEncodeFailed, err)
	}
	return model.OutputFile{Path: j.Output, Bytes: size}, nil
}

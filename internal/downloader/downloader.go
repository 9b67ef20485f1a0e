package downloader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"ytclip/internal/model"
	"ytclip/internal/progress"
	"ytclip/internal/util"
)

// FormatSelector asks for the best video plus best audio, falling back to
// the best single file.
const FormatSelector = "bv*+ba/b"

// OutputTemplate names downloads after the title, truncated to 200 bytes.
const OutputTemplate = "%(title).200B.%(ext)s"

// Options controls downloader behavior.
type Options struct {
	DownloaderPath string // Path to yt-dlp
	Verbose        bool
	Runner         util.CmdRunner
	Reporter       progress.Reporter
	JobID          string
}

// BuildDownloadArgs returns the yt-dlp arguments that fetch url into workdir
// as a single merged mp4. The URL is always the last element.
func BuildDownloadArgs(url, workdir string) []string {
	return []string{
		"--no-playlist",
		"--no-warnings",
		"--newline",
		"-f", FormatSelector,
		"--merge-output-format", "mp4",
		"-o", filepath.Join(workdir, OutputTemplate),
		url,
	}
}

// Download fetches url into workdir and returns the resolved media file.
// The caller owns workdir and its cleanup.
func Download(ctx context.Context, url, workdir string, opts Options) (model.SourceMedia, error) {
	if opts.DownloaderPath == "" {
		return model.SourceMedia{}, errors.New("downloader path is required")
	}
	if workdir == "" {
		return model.SourceMedia{}, errors.New("workdir is required")
	}
	rep := opts.Reporter
	if rep == nil {
		rep = progress.Nop{}
	}
	runner := opts.Runner
	if runner == nil {
		runner = util.NewDefaultRunner()
	}

	rep.Update(progress.Update{
		JobID:   opts.JobID,
		Stage:   progress.StageDownloading,
		Percent: -1,
		Message: "Downloading source",
	})

	res, runErr := runner.Run(ctx, util.CmdSpec{
		Path:    opts.DownloaderPath,
		Args:    BuildDownloadArgs(url, workdir),
		Dir:     workdir,
		Verbose: opts.Verbose,
		StdoutLine: func(line string) {
			if u, ok := ParseProgress(line, opts.JobID); ok {
				rep.Update(u)
				return
			}
			if opts.Verbose {
				rep.Log(progress.Log{JobID: opts.JobID, Stream: progress.StreamStdout, Line: line})
			}
		},
		StderrLine: func(line string) {
			if opts.Verbose {
				rep.Log(progress.Log{JobID: opts.JobID, Stream: progress.StreamStderr, Line: line})
			}
		},
	})
	if runErr != nil {
		if tail := res.StderrTail(3); tail != "" {
			return model.SourceMedia{}, fmt.Errorf("%w: %v\n%s", model.ErrDownloadFailed, runErr, tail)
		}
		return model.SourceMedia{}, fmt.Errorf("%w: %v", model.ErrDownloadFailed, runErr)
	}

	input, err := SelectDownloadedFile(workdir)
	if err != nil {
		return model.SourceMedia{}, fmt.Errorf("%w: %v", model.ErrDownloadFailed, err)
	}
	title := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return model.SourceMedia{Path: input, Title: title}, nil
}

// FetchInfo queries metadata without downloading media.
func FetchInfo(ctx context.Context, url string, opts Options) (Info, error) {
	if opts.DownloaderPath == "" {
		return Info{}, errors.New("downloader path is required")
	}
	runner := opts.Runner
	if runner == nil {
		runner = util.NewDefaultRunner()
	}
	res, runErr := runner.Run(ctx, util.CmdSpec{
		Path:          opts.DownloaderPath,
		Args:          []string{"--dump-json", "--no-playlist", "--no-warnings", "--skip-download", url},
		Verbose:       opts.Verbose,
		CaptureStdout: true,
	})
	if runErr != nil && len(res.Stdout) == 0 {
		return Info{}, fmt.Errorf("%w: metadata fetch: %v", model.ErrDownloadFailed, runErr)
	}
	return parseInfo(res.Stdout)
}

// parseInfo decodes the last JSON object in out. yt-dlp prints one object
// per line, so the fallback scans lines from the end.
func parseInfo(out []byte) (Info, error) {
	data := strings.TrimSpace(string(out))
	var info Info
	if err := json.Unmarshal([]byte(data), &info); err == nil && info.ID != "" {
		return info, nil
	}
	lines := strings.Split(data, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		var tmp Info
		if json.Unmarshal([]byte(line), &tmp) == nil && tmp.ID != "" {
			return tmp, nil
		}
	}
	return Info{}, fmt.Errorf("%w: parse metadata JSON", model.ErrDownloadFailed)
}

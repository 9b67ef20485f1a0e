package encoder

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"ytclip/internal/model"
)

// Job describes one encoder invocation.
type Job struct {
	Input  string
	Range  model.TimeRange
	Params model.RenderParams
	Output string // destination; the container is chosen by its extension
}

// Container identifies the output family of a destination path.
type Container string

const (
	ContainerMP4  Container = "mp4"
	ContainerWebM Container = "webm"
	ContainerGIF  Container = "gif"
)

// ContainerFor returns the container for a destination path.
func ContainerFor(path string) (Container, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4":
		return ContainerMP4, nil
	case ".webm":
		return ContainerWebM, nil
	case ".gif":
		return ContainerGIF, nil
	default:
		return "", fmt.Errorf("unsupported output extension %q", filepath.Ext(path))
	}
}

// BuildArgs dispatches on the output extension. The output path is always
// the last element.
func BuildArgs(j Job, includeProgress bool) ([]string, error) {
	c, err := ContainerFor(j.Output)
	if err != nil {
		return nil, err
	}
	switch c {
	case ContainerMP4:
		return BuildMP4Args(j, includeProgress), nil
	case ContainerWebM:
		return BuildWebMArgs(j, includeProgress), nil
	default:
		return BuildGIFArgs(j, includeProgress), nil
	}
}

// BuildMP4Args constructs H.264 arguments. Audio is dropped.
func BuildMP4Args(j Job, includeProgress bool) []string {
	pr := PresetFor(j.Params.Quality)
	args := inputArgs(j)
	args = append(args,
		"-vf", BuildVideoFilter(j.Params),
		"-an",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-preset", pr.Speed,
		"-crf", strconv.Itoa(pr.MP4CRF),
		"-movflags", "faststart",
	)
	return finish(args, j.Output, includeProgress)
}

// BuildWebMArgs constructs VP9 constant-quality arguments (-b:v 0 + CRF).
func BuildWebMArgs(j Job, includeProgress bool) []string {
	pr := PresetFor(j.Params.Quality)
	args := inputArgs(j)
	args = append(args,
		"-vf", BuildVideoFilter(j.Params),
		"-an",
		"-c:v", "libvpx-vp9",
		"-b:v", "0",
		"-crf", strconv.Itoa(pr.WebMCRF),
		"-preset", pr.Speed,
	)
	return finish(args, j.Output, includeProgress)
}

// BuildGIFArgs constructs a looping palette GIF.
func BuildGIFArgs(j Job, includeProgress bool) []string {
	args := inputArgs(j)
	args = append(args,
		"-filter_complex", BuildGIFFilter(j.Params),
		"-an",
		"-loop", "0",
	)
	return finish(args, j.Output, includeProgress)
}

// inputArgs seeks and limits the input so -t bounds the source window; the
// encoded length is then Duration/Speed.
func inputArgs(j Job) []string {
	return []string{
		"-y", "-nostdin",
		"-ss", fmt.Sprintf("%.3f", j.Range.Start),
		"-t", fmt.Sprintf("%.3f", j.Range.Duration()),
		"-i", j.Input,
	}
}

func finish(args []string, output string, includeProgress bool) []string {
	if includeProgress {
		args = append(args, "-progress", "pipe:1", "-nostats")
	}
	return append(args, output)
}

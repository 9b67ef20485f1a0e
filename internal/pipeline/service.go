// Package pipeline validates, downloads, encodes and publishes one clip.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"ytclip/internal/downloader"
	"ytclip/internal/encoder"
	"ytclip/internal/model"
	"ytclip/internal/progress"
	"ytclip/internal/publish"
	"ytclip/internal/util"
	"ytclip/internal/util/format"
)

// Service orchestrates the validate → download → encode → publish workflow.
type Service struct {
	dlPath     string
	ffmpegPath string
	opts       model.Options
	runner     util.CmdRunner
	reporter   progress.Reporter
	publisher  publish.Publisher
	jobID      string
	tempBase   string
}

// Option configures a Service.
type Option func(*Service)

// WithDownloaderPath sets the yt-dlp binary path.
func WithDownloaderPath(p string) Option {
	return func(s *Service) {
		s.dlPath = p
	}
}

// WithFFmpegPath sets the ffmpeg binary path.
func WithFFmpegPath(p string) Option {
	return func(s *Service) {
		s.ffmpegPath = p
	}
}

// WithOptions sets the clip options used for planning and execution.
func WithOptions(o model.Options) Option {
	return func(s *Service) {
		s.opts = o
	}
}

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(s *Service) {
		s.runner = r
	}
}

// WithReporter attaches a progress reporter.
func WithReporter(rp progress.Reporter) Option {
	return func(s *Service) {
		s.reporter = rp
	}
}

// WithPublisher uploads each output after encoding.
func WithPublisher(p publish.Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithJobID sets the job ID associated with reporter events.
func WithJobID(id string) Option {
	return func(s *Service) {
		s.jobID = id
	}
}

// WithTempBase sets the directory private work dirs are created under.
func WithTempBase(dir string) Option {
	return func(s *Service) {
		s.tempBase = dir
	}
}

// NewService constructs a Service, filling in a runner, a reporter and a
// job ID when none were given.
func NewService(opts ...Option) *Service {
	s := &Service{}
	for _, o := range opts {
		o(s)
	}
	if s.runner == nil {
		s.runner = util.NewDefaultRunner()
	}
	if s.reporter == nil {
		s.reporter = progress.Nop{}
	}
	if s.jobID == "" {
		s.jobID = uuid.NewString()[:8]
	}
	return s
}

// JobID returns the identifier used in reporter events.
func (s *Service) JobID() string { return s.jobID }

// Result is the outcome of Run.
type Result struct {
	JobID      string
	Plan       Plan
	Source     model.SourceMedia
	Outputs    []model.OutputFile
	KeptSource string
	Published  []string
}

// Plan validates the options and returns the commands a run would execute.
func (s *Service) Plan() (Plan, error) {
	return BuildPlan(s.opts, s.dlPath, s.ffmpegPath)
}

// Run executes the whole workflow once. The private work dir is removed on
// every return path; nothing is retried.
func (s *Service) Run(ctx context.Context) (res Result, err error) {
	res.JobID = s.jobID
	defer func() {
		if err != nil {
			s.reporter.Update(progress.Update{JobID: s.jobID, Stage: progress.StageError, Percent: -1, Message: err.Error()})
		}
		s.reporter.Result(progress.Result{JobID: s.jobID, Outputs: outputPaths(res.Outputs), Bytes: totalBytes(res.Outputs), Err: err})
	}()

	s.reporter.Update(progress.Update{JobID: s.jobID, Stage: progress.StageValidate, Percent: -1, Message: "Validating"})
	pl, err := s.Plan()
	if err != nil {
		return res, err
	}
	res.Plan = pl
	if s.dlPath == "" {
		return res, fmt.Errorf("%w: yt-dlp path is not set", model.ErrMissingDependency)
	}
	if s.ffmpegPath == "" {
		return res, fmt.Errorf("%w: ffmpeg path is not set", model.ErrMissingDependency)
	}

	workdir, err := util.MakeTempWorkdir(s.tempBase, "job")
	if err != nil {
		return res, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(workdir)

	src, err := downloader.Download(ctx, pl.URL, workdir, downloader.Options{
		DownloaderPath: s.dlPath,
		Verbose:        s.opts.Verbose,
		Runner:         s.runner,
		Reporter:       s.reporter,
		JobID:          s.jobID,
	})
	if err != nil {
		return res, err
	}
	res.Source = src

	for _, target := range pl.Targets.Paths {
		out, err := encoder.Encode(ctx, encoder.Job{
			Input:  src.Path,
			Range:  pl.Range,
			Params: pl.Params,
			Output: target,
		}, encoder.Options{
			FFmpegPath: s.ffmpegPath,
			Verbose:    s.opts.Verbose,
			Runner:     s.runner,
			Reporter:   s.reporter,
			JobID:      s.jobID,
		})
		if err != nil {
			return res, err
		}
		res.Outputs = append(res.Outputs, out)
		s.reporter.Update(progress.Update{
			JobID:   s.jobID,
			Stage:   progress.StageEncoding,
			Percent: 100,
			Target:  out.Path,
			Message: fmt.Sprintf("Saved: %s (%s)", filepath.Base(out.Path), format.HumanizeBytes(out.Bytes)),
		})
	}

	if s.opts.KeepSrc {
		kept, err := s.keepSource(src)
		if err != nil {
			return res, err
		}
		res.KeptSource = kept
	}

	if pl.Publish != "" {
		if s.publisher == nil {
			return res, fmt.Errorf("%w: no publisher configured for %s", model.ErrPublishFailed, pl.Publish)
		}
		for _, out := range res.Outputs {
			s.reporter.Update(progress.Update{JobID: s.jobID, Stage: progress.StagePublishing, Percent: -1, Target: out.Path, Message: "Publishing " + filepath.Base(out.Path)})
			loc, err := s.publisher.Publish(ctx, out.Path)
			if err != nil {
				return res, fmt.Errorf("%w: %v", model.ErrPublishFailed, err)
			}
			res.Published = append(res.Published, loc)
		}
	}

	s.reporter.Update(progress.Update{
		JobID:   s.jobID,
		Stage:   progress.StageCompleted,
		Percent: 100,
		Message: fmt.Sprintf("Done: %d file(s), %s", len(res.Outputs), format.HumanizeBytes(totalBytes(res.Outputs))),
	})
	return res, nil
}

// keepSource moves the downloaded file out of the work dir before cleanup.
func (s *Service) keepSource(src model.SourceMedia) (string, error) {
	dir := s.opts.KeepDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = wd
	}
	if err := util.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("keep source: %w", err)
	}
	dst := filepath.Join(dir, filepath.Base(src.Path))
	if err := util.MoveFile(src.Path, dst); err != nil {
		return "", fmt.Errorf("keep source: %w", err)
	}
	return dst, nil
}

func outputPaths(outs []model.OutputFile) []string {
	paths := make([]string, 0, len(outs))
	for _, o := range outs {
		paths = append(paths, o.Path)
	}
	return paths
}

func totalBytes(outs []model.OutputFile) int64 {
	var n int64
	for _, o := range outs {
		n += o.Bytes
	}
	return n
}

// IsUsageError reports whether err stems from user input rather than a tool.
func IsUsageError(err error) bool {
	return errors.Is(err, model.ErrInvalidArgument) ||
		errors.Is(err, model.ErrInvalidFormat) ||
		errors.Is(err, model.ErrInvalidRange)
}

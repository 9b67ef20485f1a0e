package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ytclip/internal/config"
	"ytclip/internal/model"
	"ytclip/internal/pipeline"
)

const (
	ExitOK            = 0
	ExitCLIError      = 1
	ExitMissingDep    = 2
	ExitDownloadError = 3
	ExitEncodeError   = 4
	ExitPublishError  = 5
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// exitFor maps a pipeline error onto its exit code.
func exitFor(err error) error {
	if err == nil {
		return nil
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee
	}
	code := ExitCLIError
	switch {
	case pipeline.IsUsageError(err):
		code = ExitCLIError
	case errors.Is(err, model.ErrMissingDependency):
		code = ExitMissingDep
	case errors.Is(err, model.ErrDownloadFailed):
		code = ExitDownloadError
	case errors.Is(err, model.ErrEncodeFailed):
		code = ExitEncodeError
	case errors.Is(err, model.ErrPublishFailed):
		code = ExitPublishError
	}
	return &ExitError{Code: code, Err: err}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:   "ytclip [url]",
		Short: "Cut short clips out of online videos",
		Long: "ytclip downloads a segment of a YouTube (or any yt-dlp supported) video and " +
			"turns it into an MP4 + WebM pair or an animated GIF, resized and re-timed with ffmpeg.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Init(cmd.Root(), cfgFile); err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			return nil
		},
		PreRunE: clipPreRun(""),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && cmd.Flags().NFlag() == 0 {
				return cmd.Help()
			}
			return runClipCmd(cmd, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default: <config dir>/ytclip/config.yaml)")
	pf.BoolP("verbose", "v", false, "Show full subprocess commands/output")
	pf.String("dl-binary", "", "Path to yt-dlp or youtube-dl")
	pf.String("ffmpeg-binary", "", "Path to ffmpeg")
	pf.Bool("no-ui", false, "Disable TUI; log progress instead")
	pf.String("log-format", "console", "Log format when the TUI is off: console, json")

	bindClipFlags(root.Flags())

	root.AddCommand(newRunCmd())
	root.AddCommand(newGIFCmd())
	root.AddCommand(newPlanCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newWizardCmd())
	root.AddCommand(newSiteCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

func bindClipFlags(fs *pflag.FlagSet) {
	fs.String("url", "", "Video URL (may also be given as the first argument)")
	fs.String("start", "", "Clip start: SS, MM:SS or HH:MM:SS (fractions allowed)")
	fs.String("end", "", "Clip end, same formats as --start")
	fs.StringP("output", "o", "clip", "Output base path; extensions are added per format")
	fs.Int("width", model.DefaultWidth, "Output width in px; height keeps the aspect ratio")
	fs.Int("fps", model.DefaultFPS, "Output frame rate")
	fs.Float64("speed", model.DefaultSpeed, "Playback speed multiplier")
	fs.String("quality", string(model.QualityMedium), "Video quality: low, medium, high")
	fs.Int("colors", model.DefaultMaxColors, "GIF palette size (1..256); implies --mode gif")
	fs.String("mode", "", "Output: video (MP4 + WebM) or gif")
	fs.Bool("keep-mp4", false, "Keep the downloaded source file")
	fs.String("keep-dir", "", "Where the kept source goes (default: current directory)")
	fs.String("publish", "", "Upload outputs to s3://bucket/prefix or gs://bucket/prefix")
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}

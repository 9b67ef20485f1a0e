package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ytclip/internal/config"
	"ytclip/internal/dirs"
	"ytclip/internal/logging"
	"ytclip/internal/model"
	"ytclip/internal/pipeline"
	"ytclip/internal/progress"
	"ytclip/internal/publish"
	"ytclip/internal/ui"
	"ytclip/internal/util"
	"ytclip/internal/util/deps"
	"ytclip/internal/util/format"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "run [url]",
		Short:         "Download a segment and encode it",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		PreRunE:       clipPreRun(""),
		RunE:          runClipCmd,
	}
	bindClipFlags(cmd.Flags())
	return cmd
}

func newGIFCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gif [url]",
		Short:         "Download a segment and encode it as an animated GIF",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		PreRunE:       clipPreRun(model.ModeGIF),
		RunE:          runClipCmd,
	}
	bindClipFlags(cmd.Flags())
	if f := cmd.Flags().Lookup("mode"); f != nil {
		f.Hidden = true
	}
	return cmd
}

type ctxKey string

const clipOptionsKey ctxKey = "clipOptions"

// clipPreRun assembles the options and stores them on the command context.
// forced overrides --mode for commands that exist for one output family.
func clipPreRun(forced model.OutputMode) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		opts, err := assembleOptions(cmd, args, forced)
		if err != nil {
			return &ExitError{Code: ExitCLIError, Err: err}
		}
		cmd.SetContext(context.WithValue(cmd.Context(), clipOptionsKey, opts))
		return nil
	}
}

func optionsFrom(cmd *cobra.Command) (model.Options, bool) {
	opts, ok := cmd.Context().Value(clipOptionsKey).(model.Options)
	return opts, ok
}

// assembleOptions reads clip flags with precedence flag > env/config >
// default. Values are checked later by the pipeline; only flag combinations
// are rejected here.
func assembleOptions(cmd *cobra.Command, args []string, forced model.OutputMode) (model.Options, error) {
	fs := cmd.Flags()
	config.BindFlags(fs, map[string]string{
		config.KeyWidth:   "width",
		config.KeyFPS:     "fps",
		config.KeyQuality: "quality",
		config.KeyColors:  "colors",
		config.KeyPublish: "publish",
	})

	url, _ := fs.GetString("url")
	if len(args) > 0 {
		if url != "" && url != args[0] {
			return model.Options{}, fmt.Errorf("%w: URL given both as argument and --url", model.ErrInvalidArgument)
		}
		url = args[0]
	}
	start, _ := fs.GetString("start")
	end, _ := fs.GetString("end")
	output, _ := fs.GetString("output")
	speed, _ := fs.GetFloat64("speed")
	modeFlag, _ := fs.GetString("mode")
	keep, _ := fs.GetBool("keep-mp4")
	keepDir, _ := fs.GetString("keep-dir")

	if fs.Changed("quality") && fs.Changed("colors") {
		return model.Options{}, fmt.Errorf("%w: --quality applies to video output and --colors to gif output; pass only one", model.ErrInvalidArgument)
	}

	mode, err := model.ParseMode(modeFlag)
	if err != nil {
		return model.Options{}, fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)
	}
	if fs.Changed("colors") {
		if fs.Changed("mode") && mode != model.ModeGIF {
			return model.Options{}, fmt.Errorf("%w: --colors requires --mode gif", model.ErrInvalidArgument)
		}
		mode = model.ModeGIF
	}
	if forced != "" {
		mode = forced
	}

	params := model.RenderParams{
		Width:     config.Int(config.KeyWidth),
		FPS:       config.Int(config.KeyFPS),
		Speed:     speed,
		MaxColors: config.Int(config.KeyColors),
	}
	if mode == model.ModeVideo {
		q, err := model.ParseQuality(config.String(config.KeyQuality))
		if err != nil {
			return model.Options{}, fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)
		}
		params.Quality = q
	} else {
		params.Quality = model.QualityMedium
	}

	return model.Options{
		URL:      strings.TrimSpace(url),
		Start:    start,
		End:      end,
		Output:   output,
		Mode:     mode,
		Params:   params,
		KeepSrc:  keep,
		KeepDir:  keepDir,
		Publish:  config.String(config.KeyPublish),
		DLBinary: config.String(config.KeyDLBinary),
		FFmpeg:   config.String(config.KeyFFmpegBinary),
		Verbose:  config.Bool(config.KeyVerbose),
		NoUI:     config.Bool(config.KeyNoUI),
	}, nil
}

func runClipCmd(cmd *cobra.Command, args []string) error {
	opts, ok := optionsFrom(cmd)
	if !ok {
		var err error
		if opts, err = assembleOptions(cmd, args, ""); err != nil {
			return &ExitError{Code: ExitCLIError, Err: err}
		}
	}
	return runClip(cmd, opts)
}

// runClip validates, resolves tools, then runs the pipeline under the TUI
// or the log reporter. Nothing external runs before validation and the
// dependency check pass.
func runClip(cmd *cobra.Command, opts model.Options) error {
	ctx := cmd.Context()
	if _, err := pipeline.BuildPlan(opts, "", ""); err != nil {
		return exitFor(err)
	}

	dlPath, err := deps.FindDownloader(opts.DLBinary)
	if err != nil {
		return &ExitError{Code: ExitMissingDep, Err: err}
	}
	ffmpegPath, err := deps.FindFFmpeg(opts.FFmpeg)
	if err != nil {
		return &ExitError{Code: ExitMissingDep, Err: err}
	}

	var pub publish.Publisher
	if opts.Publish != "" {
		if pub, err = publish.Open(ctx, opts.Publish, config.PublishConfig()); err != nil {
			return &ExitError{Code: ExitPublishError, Err: fmt.Errorf("%w: %v", model.ErrPublishFailed, err)}
		}
		defer pub.Close()
	}

	tempBase, err := dirs.TempBaseDir()
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	if err := dirs.Ensure(tempBase); err != nil {
		return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("create temp base: %w", err)}
	}

	svcOpts := []pipeline.Option{
		pipeline.WithDownloaderPath(dlPath),
		pipeline.WithFFmpegPath(ffmpegPath),
		pipeline.WithOptions(opts),
		pipeline.WithTempBase(tempBase),
	}
	if pub != nil {
		svcOpts = append(svcOpts, pipeline.WithPublisher(pub))
	}

	var res pipeline.Result
	work := func(ctx context.Context, rep progress.Reporter) error {
		svc := pipeline.NewService(append(svcOpts, pipeline.WithReporter(rep))...)
		var err error
		res, err = svc.Run(ctx)
		return err
	}

	if !opts.NoUI && isTerminal() {
		err = ui.Run(ctx, "ytclip "+opts.URL, opts.Verbose, work)
	} else {
		log := newLogger(cmd.ErrOrStderr(), opts.Verbose)
		svcOpts = append(svcOpts, pipeline.WithRunner(util.NewLoggingRunner(log)))
		err = work(ctx, logging.NewReporter(log))
	}
	if err != nil {
		return exitFor(err)
	}
	printResult(cmd.OutOrStdout(), res)
	return nil
}

func printResult(w io.Writer, res pipeline.Result) {
	for _, out := range res.Outputs {
		fmt.Fprintf(w, "Saved: %s (%s)\n", out.Path, format.HumanizeBytes(out.Bytes))
	}
	if res.KeptSource != "" {
		fmt.Fprintf(w, "Kept source: %s\n", res.KeptSource)
	}
	for _, loc := range res.Published {
		fmt.Fprintf(w, "Published: %s\n", loc)
	}
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	if config.String(config.KeyLogFormat) == "json" {
		return logging.NewJSON(w, verbose)
	}
	return logging.New(w, verbose)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

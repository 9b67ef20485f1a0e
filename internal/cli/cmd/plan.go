package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ytclip/internal/downloader"
	"ytclip/internal/encoder"
	"ytclip/internal/model"
	"ytclip/internal/pipeline"
	"ytclip/internal/timecode"
	"ytclip/internal/util/deps"
	"ytclip/internal/util/format"
)

const infoTimeout = 30 * time.Second

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "plan [url]",
		Short:         "Show the commands a run would execute, without downloading",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		PreRunE:       clipPreRun(""),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, ok := optionsFrom(cmd)
			if !ok {
				return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("options not assembled")}
			}
			opts.DryRun = true
			offline, _ := cmd.Flags().GetBool("offline")
			return runPlan(cmd.Context(), cmd.OutOrStdout(), opts, !offline)
		},
	}
	bindClipFlags(cmd.Flags())
	cmd.Flags().Bool("offline", false, "Skip the metadata lookup")
	return cmd
}

// runPlan prints the plan. Missing tools are not an error here; their bare
// names are printed and the metadata lookup is skipped.
func runPlan(ctx context.Context, w io.Writer, opts model.Options, fetchInfo bool) error {
	dlPath, dlErr := deps.FindDownloader(opts.DLBinary)
	ffmpegPath, _ := deps.FindFFmpeg(opts.FFmpeg)

	pl, err := pipeline.BuildPlan(opts, dlPath, ffmpegPath)
	if err != nil {
		return exitFor(err)
	}
	printPlan(w, pl)

	if !fetchInfo || dlErr != nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, infoTimeout)
	defer cancel()
	info, err := downloader.FetchInfo(ctx, pl.URL, downloader.Options{DownloaderPath: dlPath, Verbose: opts.Verbose})
	if err != nil {
		fmt.Fprintf(w, "warning: metadata lookup failed: %v\n", err)
		return nil
	}
	printInfo(w, pl, info)
	return nil
}

func printPlan(w io.Writer, pl pipeline.Plan) {
	fmt.Fprintln(w, "Plan:")
	fmt.Fprintf(w, "- URL:          %s\n", pl.URL)
	fmt.Fprintf(w, "- Range:        %s - %s (%s)\n", timecode.Format(pl.Range.Start), timecode.Format(pl.Range.End), format.Seconds(pl.Range.Duration()))
	fmt.Fprintf(w, "- Clip length:  %s at %gx\n", format.Seconds(pl.OutputDuration), pl.Params.Speed)
	fmt.Fprintf(w, "- Mode:         %s\n", pl.Mode)
	if pl.Mode == model.ModeGIF {
		fmt.Fprintf(w, "- Colors:       %d\n", pl.Params.MaxColors)
	} else {
		fmt.Fprintf(w, "- Quality:      %s\n", pl.Params.Quality)
	}
	fmt.Fprintf(w, "- Filter:       %s\n", pl.Filter)
	fmt.Fprintf(w, "- Outputs:      %s\n", strings.Join(pl.Targets.Paths, ", "))
	if pl.Publish != "" {
		fmt.Fprintf(w, "- Publish to:   %s\n", pl.Publish)
	}
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintf(w, "  %s\n", pl.DownloadCmd)
	for _, c := range pl.EncodeCmds {
		fmt.Fprintf(w, "  %s\n", c)
	}
}

func printInfo(w io.Writer, pl pipeline.Plan, info downloader.Info) {
	fmt.Fprintln(w, "Source:")
	fmt.Fprintf(w, "- Title:        %s\n", info.Title)
	if info.Uploader != "" {
		fmt.Fprintf(w, "- Uploader:     %s\n", info.Uploader)
	}
	if info.Duration > 0 {
		fmt.Fprintf(w, "- Duration:     %s\n", timecode.Format(info.Duration))
		if pl.Range.End > info.Duration {
			fmt.Fprintf(w, "warning: end %s is past the end of the video\n", timecode.Format(pl.Range.End))
		}
	}
	if h := encoder.ScaledHeight(pl.Params.Width, info.Width, info.Height); h > 0 {
		fmt.Fprintf(w, "- Frame:        %dx%d -> %dx%d\n", info.Width, info.Height, pl.Params.Width, h)
	}
}

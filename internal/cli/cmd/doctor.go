package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ytclip/internal/config"
	"ytclip/internal/dirs"
	"ytclip/internal/util/deps"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Diagnose external dependencies (yt-dlp, ffmpeg)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			dl, derr := deps.FindDownloader(config.String(config.KeyDLBinary))
			if derr != nil {
				return &ExitError{Code: ExitMissingDep, Err: derr}
			}
			ff, ferr := deps.FindFFmpeg(config.String(config.KeyFFmpegBinary))
			if ferr != nil {
				return &ExitError{Code: ExitMissingDep, Err: ferr}
			}
			fmt.Fprintf(w, "Downloader: %s\n", dl)
			fmt.Fprintf(w, "FFmpeg:     %s\n", ff)
			if cfg := config.Used(); cfg != "" {
				fmt.Fprintf(w, "Config:     %s\n", cfg)
			}
			if tmp, err := dirs.TempBaseDir(); err == nil {
				fmt.Fprintf(w, "Temp base:  %s\n", tmp)
			}
			return nil
		},
	}
}

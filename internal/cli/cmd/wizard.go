package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"ytclip/internal/model"
	"ytclip/internal/ui"
)

func newWizardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wizard",
		Short:         "Answer a few questions, then run",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PreRunE:       clipPreRun(""),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal() {
				return &ExitError{Code: ExitCLIError, Err: errors.New("wizard needs an interactive terminal")}
			}
			defaults, _ := optionsFrom(cmd)
			opts, err := ui.RunWizard(cmd.Context(), defaults)
			if err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return &ExitError{Code: ExitCLIError, Err: errors.New("aborted")}
				}
				return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)}
			}
			return runClip(cmd, opts)
		},
	}
	bindClipFlags(cmd.Flags())
	return cmd
}

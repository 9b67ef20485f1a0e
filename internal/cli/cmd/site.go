package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ytclip/internal/config"
	"ytclip/internal/site"
)

func newSiteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Portfolio helpers: project pages and card links",
	}
	cmd.PersistentFlags().String("base", ".", "Site root containing project_cards/")
	cmd.AddCommand(newSitePagesCmd(), newSiteLinkCmd())
	return cmd
}

func siteInputs(cmd *cobra.Command) (string, site.Mapping, error) {
	config.BindFlags(cmd.Flags(), map[string]string{config.KeySiteBaseDir: "base"})
	m, err := site.ParseMapping(config.StringSlice(config.KeySiteProjects))
	if err != nil {
		return "", nil, &ExitError{Code: ExitCLIError, Err: err}
	}
	return config.String(config.KeySiteBaseDir), m, nil
}

func newSitePagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "pages",
		Short:         "Render a standalone page for every project card",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base, m, err := siteInputs(cmd)
			if err != nil {
				return err
			}
			written, err := site.GeneratePages(base, m, config.String(config.KeySiteOwner))
			for _, p := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote: %s\n", p)
			}
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			return nil
		},
	}
}

func newSiteLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "link",
		Short:         "Wrap project cards in links to their pages",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base, m, err := siteInputs(cmd)
			if err != nil {
				return err
			}
			changed, err := site.LinkCards(base, m)
			for _, c := range changed {
				fmt.Fprintf(cmd.OutOrStdout(), "Linked: %s\n", c)
			}
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			if len(changed) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "All cards already linked")
			}
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "serve",
		Short:         "Serve a directory with caching disabled",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config.BindFlags(cmd.Flags(), map[string]string{
				config.KeyServeDir:  "dir",
				config.KeyServePort: "port",
			})
			log := newLogger(cmd.ErrOrStderr(), config.Bool(config.KeyVerbose))
			addr := fmt.Sprintf(":%d", config.Int(config.KeyServePort))
			if err := site.Serve(cmd.Context(), addr, config.String(config.KeyServeDir), log); err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			return nil
		},
	}
	cmd.Flags().String("dir", ".", "Directory to serve")
	cmd.Flags().Int("port", 8000, "Port to listen on")
	return cmd
}

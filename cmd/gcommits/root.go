package main

import (
	"github.com/alimgiray/gcommits/internal/export"
	"github.com/alimgiray/gcommits/internal/services"
	"github.com/alimgiray/gcommits/pkg/config"
	"github.com/alimgiray/gcommits/pkg/logger"
	"github.com/spf13/cobra"
)

// app holds what the commands share
type app struct {
	cfg         *config.Config
	credentials *services.CredentialService
	clipboard   export.Clipboard
}

func newRootCmd(a *app) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "gcommits",
		Short:         "List your commits across every project, grouped by day",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetVerbose(verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newCommitsCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
	)

	return root
}

// Package cli implements the cobra commands for pagemill. Each
// subcommand lives in its own file; this file holds the root command
// and the shared flags.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagemill/pagemill/pkg/logger"
	"github.com/pagemill/pagemill/pkg/version"
)

var verbose bool

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pagemill",
		Short: "PDF document toolkit and release pipeline runner",
		Long: `pagemill reads, inspects and renders PDF documents through MuPDF,
and runs the project's linear release pipeline (checkout, install,
build, test, publish).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.GetVersionInfo(),
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")

	rootCmd.AddCommand(NewInfoCommand())
	rootCmd.AddCommand(NewTextCommand())
	rootCmd.AddCommand(NewRenderCommand())
	rootCmd.AddCommand(NewScanCommand())
	rootCmd.AddCommand(NewReleaseCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() *logger.Logger {
	log := logger.New(logger.WithPrefix("[pagemill] "))
	log.SetVerbose(verbose)
	return log
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagemill/pagemill/internal/config"
	"github.com/pagemill/pagemill/internal/document"
	"github.com/pagemill/pagemill/internal/scanner"
)

func NewScanCommand() *cobra.Command {
	var (
		configPath string
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Render every PDF under a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return runScan(cmd, configPath, dir, outputDir)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "path to config file")
	cmd.Flags().StringVar(&outputDir, "out", "", "output directory (overrides config)")

	return cmd
}

func runScan(cmd *cobra.Command, configPath, dir, outputDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if dir == "" {
		dir = cfg.SourceDir
	}
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	mode := document.RenderForScreen
	if cfg.Render.Mode == "print" {
		mode = document.RenderForPrint
	}

	log := newLogger()
	renderer, err := document.NewRenderer(outputDir, mode, log)
	if err != nil {
		return err
	}

	stats, err := scanner.New(renderer, log).ScanDirectory(cmd.Context(), dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "processed %d document(s) with %d page(s), rendered %d page(s) to %s\n",
		stats.DocumentCount, stats.PageCount, stats.RenderedCount, outputDir)
	return nil
}

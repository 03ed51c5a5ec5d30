package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagemill/pagemill/internal/document"
	"github.com/pagemill/pagemill/pkg/utils"
)

func NewRenderCommand() *cobra.Command {
	var (
		password  string
		outputDir string
		forPrint  bool
	)

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render document pages to PNG files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], password, outputDir, forPrint)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "document password")
	cmd.Flags().StringVar(&outputDir, "out", "", "output directory (default: temp dir)")
	cmd.Flags().BoolVar(&forPrint, "print", false, "render at print resolution")

	return cmd
}

func runRender(cmd *cobra.Command, path, password, outputDir string, forPrint bool) error {
	doc, err := openDocument(path, password)
	if err != nil {
		return err
	}
	defer doc.Close()

	if outputDir == "" {
		outputDir = utils.GetDefaultOutputDir()
	}

	mode := document.RenderForScreen
	if forPrint {
		mode = document.RenderForPrint
	}

	renderer, err := document.NewRenderer(outputDir, mode, newLogger())
	if err != nil {
		return err
	}

	rendered, err := renderer.RenderAll(cmd.Context(), doc)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, page := range rendered {
		fmt.Fprintf(out, "page %d -> %s\n", page.PageNum, page.ImagePath)
	}
	fmt.Fprintf(out, "rendered %d page(s) to %s\n", len(rendered), outputDir)
	return nil
}

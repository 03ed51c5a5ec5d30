package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagemill/pagemill/internal/document"
)

func NewTextCommand() *cobra.Command {
	var (
		password string
		pageNum  int
	)

	cmd := &cobra.Command{
		Use:   "text <file>",
		Short: "Extract page text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runText(cmd, args[0], password, pageNum)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "document password")
	cmd.Flags().IntVar(&pageNum, "page", -1, "page to extract (default: all pages)")

	return cmd
}

func runText(cmd *cobra.Command, path, password string, pageNum int) error {
	doc, err := openDocument(path, password)
	if err != nil {
		return err
	}
	defer doc.Close()

	out := cmd.OutOrStdout()

	if pageNum >= 0 {
		page, err := doc.Page(pageNum)
		if err != nil {
			return err
		}
		text, err := page.Text()
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
		return nil
	}

	return doc.Walk(func(page *document.Page) error {
		text, err := page.Text()
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
		return nil
	})
}

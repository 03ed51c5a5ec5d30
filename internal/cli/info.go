package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagemill/pagemill/internal/document"
)

func NewInfoCommand() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Print document metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0], password)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "document password")

	return cmd
}

func runInfo(cmd *cobra.Command, path, password string) error {
	doc, err := openDocument(path, password)
	if err != nil {
		return err
	}
	defer doc.Close()

	info, err := doc.Info()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:        %s\n", path)
	fmt.Fprintf(out, "Title:       %s\n", info.Title)
	fmt.Fprintf(out, "Author:      %s\n", info.Author)
	fmt.Fprintf(out, "Version:     %s\n", info.VersionString)
	fmt.Fprintf(out, "Pages:       %d\n", info.PageCount)
	fmt.Fprintf(out, "Permissions: %s\n", info.Permissions)
	if info.Encryption != "" {
		fmt.Fprintf(out, "Encryption:  %s\n", info.Encryption)
	}

	return doc.Walk(func(page *document.Page) error {
		size := page.Size()
		fmt.Fprintf(out, "  page %d: %.2f x %.2f\n", page.Num(), size.Width, size.Height)
		return nil
	})
}

func openDocument(path, password string) (*document.Document, error) {
	if password != "" {
		return document.Open(path, document.WithPassword(password))
	}
	return document.Open(path)
}

package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pagemill/pagemill/internal/document"
)

// Reports page dimensions from the parser's media boxes alongside the
// renderer's page bounds, and flags pages where the two disagree or
// where the document mixes page sizes.
func main() {
	pdfPath := flag.String("file", "", "Path to PDF file")
	flag.Parse()

	if *pdfPath == "" {
		fmt.Println("Please provide a PDF file path using -file flag")
		os.Exit(1)
	}

	dims, err := api.PageDimsFile(*pdfPath)
	if err != nil {
		fmt.Printf("Error reading media boxes: %v\n", err)
		os.Exit(1)
	}

	doc, err := document.Open(*pdfPath)
	if err != nil {
		fmt.Printf("Error opening PDF: %v\n", err)
		os.Exit(1)
	}
	defer doc.Close()

	fmt.Printf("%s: %s, %d page(s)\n", *pdfPath, doc.VersionString(), doc.NumPages())

	mixed := false
	for i, dim := range dims {
		fmt.Printf("page %d: %.2f x %.2f points", i+1, dim.Width, dim.Height)

		if i > 0 && (dim.Width != dims[0].Width || dim.Height != dims[0].Height) {
			mixed = true
			fmt.Print(" [differs from page 1]")
		}

		if page, err := doc.Page(i); err == nil {
			size := page.Size()
			if math.Abs(size.Width-dim.Width) > 1 || math.Abs(size.Height-dim.Height) > 1 {
				fmt.Printf(" [renderer reports %.2f x %.2f]", size.Width, size.Height)
			}
		}
		fmt.Println()
	}

	if mixed {
		fmt.Println("\nWarning: document mixes page sizes")
	}
}

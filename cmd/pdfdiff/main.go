package main

import (
	"fmt"
	"os"

	"github.com/pagemill/pagemill/internal/document"
	"github.com/pagemill/pagemill/pkg/utils"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Println("Usage: pdfdiff file1.pdf file2.pdf")
		os.Exit(1)
	}

	doc1, err := document.Open(os.Args[1])
	if err != nil {
		fmt.Printf("Error opening first PDF: %v\n", err)
		os.Exit(1)
	}
	defer doc1.Close()

	doc2, err := document.Open(os.Args[2])
	if err != nil {
		fmt.Printf("Error opening second PDF: %v\n", err)
		os.Exit(1)
	}
	defer doc2.Close()

	fmt.Printf("\nBasic Properties:\n")
	fmt.Printf("PDF 1: %s, %d page(s)\n", doc1.VersionString(), doc1.NumPages())
	fmt.Printf("PDF 2: %s, %d page(s)\n", doc2.VersionString(), doc2.NumPages())

	maxPages := doc1.NumPages()
	if doc2.NumPages() < maxPages {
		maxPages = doc2.NumPages()
	}

	for pageNum := 0; pageNum < maxPages; pageNum++ {
		fmt.Printf("\nAnalyzing Page %d:\n", pageNum+1)

		page1, err := doc1.Page(pageNum)
		if err != nil {
			fmt.Printf("Error reading page from PDF 1: %v\n", err)
			continue
		}
		page2, err := doc2.Page(pageNum)
		if err != nil {
			fmt.Printf("Error reading page from PDF 2: %v\n", err)
			continue
		}

		size1 := page1.Size()
		size2 := page2.Size()
		fmt.Printf("PDF 1 dimensions: %.2f x %.2f\n", size1.Width, size1.Height)
		fmt.Printf("PDF 2 dimensions: %.2f x %.2f\n", size2.Width, size2.Height)

		text1, _ := page1.Text()
		text2, _ := page2.Text()
		fmt.Printf("Text content identical: %v\n", text1 == text2)

		img1, err := page1.Image()
		if err != nil {
			fmt.Printf("Error rendering page from PDF 1: %v\n", err)
			continue
		}
		img2, err := page2.Image()
		if err != nil {
			fmt.Printf("Error rendering page from PDF 2: %v\n", err)
			continue
		}

		hash1, _ := utils.GenerateImageHash(img1)
		hash2, _ := utils.GenerateImageHash(img2)
		fmt.Printf("PDF 1 hash: %s\n", hash1)
		fmt.Printf("PDF 2 hash: %s\n", hash2)
		fmt.Printf("Hashes match: %v\n", hash1 == hash2)
	}
}

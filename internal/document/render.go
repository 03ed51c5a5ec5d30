package document

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pagemill/pagemill/pkg/logger"
	"github.com/pagemill/pagemill/pkg/models"
	"github.com/pagemill/pagemill/pkg/utils"
)

// RenderMode selects the rasterization target.
type RenderMode int

const (
	RenderForScreen RenderMode = iota
	RenderForPrint
)

// Renderer writes document pages to PNG files.
type Renderer struct {
	outputDir string
	mode      RenderMode
	logger    *logger.Logger
}

func NewRenderer(outputDir string, mode RenderMode, log *logger.Logger) (*Renderer, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Renderer{
		outputDir: outputDir,
		mode:      mode,
		logger:    log,
	}, nil
}

// RenderPage rasterizes one page and writes it out. The filename
// carries the page number and a short pixel hash, so re-rendering an
// unchanged page produces the same name.
func (r *Renderer) RenderPage(page *Page) (models.RenderedPage, error) {
	var (
		img *image.RGBA
		err error
	)
	switch r.mode {
	case RenderForPrint:
		img, err = page.ImageForPrint()
	default:
		img, err = page.Image()
	}
	if err != nil {
		return models.RenderedPage{}, err
	}

	hash, err := utils.GenerateImageHash(img)
	if err != nil {
		return models.RenderedPage{}, fmt.Errorf("failed to hash page %d: %w", page.Num(), err)
	}

	filename := fmt.Sprintf("page_%d_%s.png", page.Num(), utils.ShortHash(hash))
	imagePath := filepath.Join(r.outputDir, filename)

	if err := saveImage(img, imagePath); err != nil {
		return models.RenderedPage{}, fmt.Errorf("failed to save image for page %d: %w", page.Num(), err)
	}

	r.logger.Debug("Rendered page %d to %s", page.Num(), imagePath)

	return models.RenderedPage{
		SourcePath: page.doc.Path(),
		PageNum:    page.Num(),
		ImagePath:  imagePath,
		Hash:       hash,
	}, nil
}

// RenderAll writes every page of the document, honoring cancellation
// between pages.
func (r *Renderer) RenderAll(ctx context.Context, doc *Document) ([]models.RenderedPage, error) {
	var rendered []models.RenderedPage

	err := doc.Walk(func(page *Page) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		out, err := r.RenderPage(page)
		if err != nil {
			return err
		}
		rendered = append(rendered, out)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rendered, nil
}

// ProcessDocument opens the file at path and renders all its pages.
// This is the scanner entry point.
func (r *Renderer) ProcessDocument(ctx context.Context, path string) (models.DocumentResult, error) {
	doc, err := Open(path)
	if err != nil {
		return models.DocumentResult{}, err
	}
	defer doc.Close()

	rendered, err := r.RenderAll(ctx, doc)
	if err != nil {
		return models.DocumentResult{}, err
	}

	return models.DocumentResult{
		PageCount: doc.NumPages(),
		Rendered:  rendered,
	}, nil
}

// OutputDir returns the directory pages are written into.
func (r *Renderer) OutputDir() string {
	return r.outputDir
}

// Cleanup removes the output directory and everything in it.
func (r *Renderer) Cleanup() error {
	return os.RemoveAll(r.outputDir)
}

func saveImage(img *image.RGBA, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}

package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pagemill/pagemill/pkg/logger"
	"github.com/pagemill/pagemill/pkg/models"
)

type Stats struct {
	DocumentCount int
	PageCount     int
	RenderedCount int
}

// DocumentProcessor handles one PDF file found during a scan.
type DocumentProcessor interface {
	ProcessDocument(ctx context.Context, path string) (models.DocumentResult, error)
}

type DirectoryScanner struct {
	processor DocumentProcessor
	logger    *logger.Logger
}

func New(processor DocumentProcessor, log *logger.Logger) *DirectoryScanner {
	return &DirectoryScanner{
		processor: processor,
		logger:    log,
	}
}

// ScanDirectory walks dir and processes every PDF underneath it.
// Per-file failures are logged and skipped; cancellation aborts the
// walk.
func (s *DirectoryScanner) ScanDirectory(ctx context.Context, dir string) (Stats, error) {
	var stats Stats

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			s.logger.Debug("Scanning directory: %s", path)
			return nil
		}

		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil
		}

		stats.DocumentCount++
		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			relPath = path
		}
		s.logger.Info("Processing document (%d): %s", stats.DocumentCount, relPath)

		result, err := s.processor.ProcessDocument(ctx, path)
		if err != nil {
			if err == context.Canceled {
				return err
			}
			s.logger.Warn("Error processing %s: %v", relPath, err)
			return nil
		}

		stats.PageCount += result.PageCount
		if len(result.Rendered) > 0 {
			s.logger.Info("Rendered %d of %d pages from %s", len(result.Rendered), result.PageCount, relPath)
			stats.RenderedCount += len(result.Rendered)
		}

		return nil
	})

	if err != nil {
		return stats, err
	}

	if stats.DocumentCount == 0 {
		return stats, fmt.Errorf("no PDF files found in %s or its subdirectories", dir)
	}

	return stats, nil
}

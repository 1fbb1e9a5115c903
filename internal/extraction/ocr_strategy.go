package extraction

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"alfredoptarigan/hr-screening/internal/models"
)

// pdfOCRStrategy rasterizes every page and recognizes it. Rendered pages
// live in a scratch directory next to the upload and are removed on return.
type pdfOCRStrategy struct {
	engine     OCREngine
	rasterizer Rasterizer
	scale      float64
}

func (s *pdfOCRStrategy) Name() string                  { return "pdf-ocr" }
func (s *pdfOCRStrategy) Provenance() models.Provenance { return models.ProvenanceOCR }

func (s *pdfOCRStrategy) Extract(ctx context.Context, path string) (string, error) {
	pageCount, err := s.rasterizer.PageCount(path)
	if err != nil {
		return "", err
	}

	pagesDir, err := os.MkdirTemp(filepath.Dir(path), "pages-*")
	if err != nil {
		return "", fmt.Errorf("failed to create page directory: %w", err)
	}
	defer os.RemoveAll(pagesDir)

	log.Printf("📄 Running OCR on %d page(s) of %s\n", pageCount, filepath.Base(path))

	var pages []string
	for page := 1; page <= pageCount; page++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		imagePath, err := s.rasterizer.RasterizePage(ctx, path, page, s.scale, pagesDir)
		if err != nil {
			log.Printf("⚠️  Skipping OCR for page %d: %v\n", page, err)
			continue
		}

		text, err := s.engine.Recognize(ctx, imagePath)
		if err != nil {
			log.Printf("⚠️  OCR failed for page %d: %v\n", page, err)
			continue
		}

		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}

	return strings.Join(pages, "\n"), nil
}

type imageOCRStrategy struct {
	engine OCREngine
}

func (s *imageOCRStrategy) Name() string                  { return "image-ocr" }
func (s *imageOCRStrategy) Provenance() models.Provenance { return models.ProvenanceOCR }

func (s *imageOCRStrategy) Extract(ctx context.Context, path string) (string, error) {
	return s.engine.Recognize(ctx, path)
}

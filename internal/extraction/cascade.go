package extraction

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"unicode/utf8"

	"alfredoptarigan/hr-screening/internal/models"
)

// Strategy produces text from a file on disk.
type Strategy interface {
	Name() string
	Provenance() models.Provenance
	Extract(ctx context.Context, path string) (string, error)
}

// TempStore writes an upload to a private scratch location. The cleanup
// func removes everything created under it.
type TempStore interface {
	SaveTemp(fileName string, content []byte) (path string, cleanup func(), err error)
}

type Cascade interface {
	Extract(ctx context.Context, doc models.SourceDocument) (*models.ExtractedText, error)
	Supports(ext string) bool
	SupportedExtensions() []string
}

type Options struct {
	MinTextLength int
	OCRScale      float64
}

type plan struct {
	strategies []Strategy
	// terminal plans report strategy failures as corrupt documents.
	terminal bool
}

type cascade struct {
	store         TempStore
	plans         map[string]plan
	minTextLength int
}

func NewCascade(store TempStore, engine OCREngine, rasterizer Rasterizer, opts Options) Cascade {
	if opts.MinTextLength <= 0 {
		opts.MinTextLength = 100
	}
	if opts.OCRScale <= 0 {
		opts.OCRScale = 2.5
	}

	pdfPlan := plan{strategies: []Strategy{
		pdfTextStrategy{},
		pdfContentStrategy{},
		&pdfOCRStrategy{engine: engine, rasterizer: rasterizer, scale: opts.OCRScale},
	}}
	docxPlan := plan{strategies: []Strategy{docxStrategy{}}, terminal: true}
	textPlan := plan{strategies: []Strategy{plainTextStrategy{}}}
	imagePlan := plan{strategies: []Strategy{&imageOCRStrategy{engine: engine}}}

	return newCascade(store, map[string]plan{
		".pdf":  pdfPlan,
		".docx": docxPlan,
		".txt":  textPlan,
		".jpg":  imagePlan,
		".jpeg": imagePlan,
		".png":  imagePlan,
		".bmp":  imagePlan,
		".tiff": imagePlan,
		".tif":  imagePlan,
	}, opts.MinTextLength)
}

func newCascade(store TempStore, plans map[string]plan, minTextLength int) *cascade {
	return &cascade{
		store:         store,
		plans:         plans,
		minTextLength: minTextLength,
	}
}

// Supports implements Cascade.
func (c *cascade) Supports(ext string) bool {
	_, ok := c.plans[normalizeExt(ext)]
	return ok
}

// SupportedExtensions implements Cascade.
func (c *cascade) SupportedExtensions() []string {
	exts := make([]string, 0, len(c.plans))
	for ext := range c.plans {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Extract implements Cascade. Strategies run in order until one yields at
// least minTextLength characters. Otherwise the last non-empty output wins.
func (c *cascade) Extract(ctx context.Context, doc models.SourceDocument) (*models.ExtractedText, error) {
	ext := normalizeExt(doc.Extension)
	p, ok := c.plans[ext]
	if !ok {
		return nil, models.NewUnsupportedFormatError(ext)
	}

	path, cleanup, err := c.store.SaveTemp(doc.FileName, doc.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	defer cleanup()

	var (
		best     *models.ExtractedText
		failures []error
	)

	for _, strategy := range p.strategies {
		text, err := strategy.Extract(ctx, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			log.Printf("⚠️  %s failed for %s: %v\n", strategy.Name(), doc.FileName, err)
			failures = append(failures, fmt.Errorf("%s: %w", strategy.Name(), err))
			if p.terminal {
				return nil, models.NewCorruptDocumentError(ext, err)
			}
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		best = &models.ExtractedText{
			Text:       text,
			Provenance: strategy.Provenance(),
			Strategy:   strategy.Name(),
		}
		if utf8.RuneCountInString(text) >= c.minTextLength {
			break
		}
	}

	if best == nil {
		if len(failures) == len(p.strategies) {
			return nil, models.NewCorruptDocumentError(ext, errors.Join(failures...))
		}
		return nil, models.NewNoTextError()
	}

	log.Printf("📄 Extracted %d characters from %s using %s\n", utf8.RuneCountInString(best.Text), doc.FileName, best.Strategy)
	return best, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

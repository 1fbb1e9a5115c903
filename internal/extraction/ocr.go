package extraction

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// OCREngine recognizes text in a single image.
type OCREngine interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// Rasterizer renders PDF pages to images.
type Rasterizer interface {
	PageCount(pdfPath string) (int, error)
	RasterizePage(ctx context.Context, pdfPath string, page int, scale float64, outDir string) (string, error)
}

type tesseractEngine struct {
	runner Runner
	binary string
	lang   string
}

func NewTesseractEngine(runner Runner, binary, lang string) OCREngine {
	return &tesseractEngine{
		runner: runner,
		binary: binary,
		lang:   lang,
	}
}

// Recognize implements OCREngine.
func (t *tesseractEngine) Recognize(ctx context.Context, imagePath string) (string, error) {
	out, errb, err := t.runner.Run(ctx, t.binary, imagePath, "stdout", "-l", t.lang)
	if err != nil {
		return "", fmt.Errorf("tesseract failed: %w: %s", err, strings.TrimSpace(string(errb)))
	}
	return string(out), nil
}

type pdftoppmRasterizer struct {
	runner Runner
	binary string
}

func NewPdftoppmRasterizer(runner Runner, binary string) Rasterizer {
	return &pdftoppmRasterizer{
		runner: runner,
		binary: binary,
	}
}

// PageCount implements Rasterizer.
func (p *pdftoppmRasterizer) PageCount(pdfPath string) (int, error) {
	count, err := api.PageCountFile(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("failed to count PDF pages: %w", err)
	}
	return count, nil
}

// RasterizePage implements Rasterizer. PDF user space is 72 DPI, so scale
// 2.5 renders at 180 DPI.
func (p *pdftoppmRasterizer) RasterizePage(ctx context.Context, pdfPath string, page int, scale float64, outDir string) (string, error) {
	dpi := int(math.Round(72 * scale))
	prefix := filepath.Join(outDir, fmt.Sprintf("page-%d", page))
	pageArg := strconv.Itoa(page)

	_, errb, err := p.runner.Run(ctx, p.binary,
		"-r", strconv.Itoa(dpi),
		"-f", pageArg,
		"-l", pageArg,
		"-singlefile",
		"-png",
		pdfPath, prefix)
	if err != nil {
		return "", fmt.Errorf("pdftoppm failed on page %d: %w: %s", page, err, strings.TrimSpace(string(errb)))
	}

	imagePath := prefix + ".png"
	if _, err := os.Stat(imagePath); err != nil {
		return "", fmt.Errorf("pdftoppm produced no image for page %d: %w", page, err)
	}
	return imagePath, nil
}

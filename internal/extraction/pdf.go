package extraction

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"alfredoptarigan/hr-screening/internal/models"
)

// pdfTextStrategy reads the text layer page by page.
type pdfTextStrategy struct{}

func (pdfTextStrategy) Name() string                  { return "pdf-text" }
func (pdfTextStrategy) Provenance() models.Provenance { return models.ProvenanceNative }

func (pdfTextStrategy) Extract(ctx context.Context, path string) (text string, err error) {
	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("⚠️  Skipping page %d of %s: %v\n", pageIndex, filepath.Base(path), err)
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

// pdfContentStrategy decodes text operators from raw page content streams.
// It recovers documents whose structure the text-layer reader rejects.
type pdfContentStrategy struct{}

func (pdfContentStrategy) Name() string                  { return "pdf-content-stream" }
func (pdfContentStrategy) Provenance() models.Provenance { return models.ProvenanceNative }

func (pdfContentStrategy) Extract(ctx context.Context, path string) (string, error) {
	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to count PDF pages: %w", err)
	}

	outDir, err := os.MkdirTemp(filepath.Dir(path), "content-*")
	if err != nil {
		return "", fmt.Errorf("failed to create content directory: %w", err)
	}
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	var textBuilder strings.Builder
	for page := 1; page <= pageCount; page++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		pageDir := filepath.Join(outDir, strconv.Itoa(page))
		if err := os.MkdirAll(pageDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create content directory: %w", err)
		}

		if err := api.ExtractContentFile(path, pageDir, []string{strconv.Itoa(page)}, conf); err != nil {
			log.Printf("⚠️  Skipping page %d of %s: %v\n", page, filepath.Base(path), err)
			continue
		}

		files, _ := filepath.Glob(filepath.Join(pageDir, "*"))
		sort.Strings(files)
		for _, file := range files {
			data, err := os.ReadFile(file)
			if err != nil {
				continue
			}
			textBuilder.WriteString(textFromContentStream(string(data)))
			textBuilder.WriteString("\n")
		}
	}

	return textBuilder.String(), nil
}

var contentOperatorRegex = regexp.MustCompile(`(?s)\(((?:\\.|[^\\)])*)\)\s*(?:Tj|'|")|\[(.*?)\]\s*TJ|T\*|\bT[dD]\b|\bET\b`)

var contentStringRegex = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)`)

// textFromContentStream walks Tj, TJ, ' and " operators in order and turns
// positioning operators into line breaks.
func textFromContentStream(stream string) string {
	var text strings.Builder

	for _, m := range contentOperatorRegex.FindAllStringSubmatchIndex(stream, -1) {
		match := stream[m[0]:m[1]]
		switch {
		case strings.HasPrefix(match, "("):
			text.WriteString(decodePDFString(stream[m[2]:m[3]]))
		case strings.HasPrefix(match, "["):
			for _, s := range contentStringRegex.FindAllStringSubmatch(stream[m[4]:m[5]], -1) {
				text.WriteString(decodePDFString(s[1]))
			}
		default:
			if text.Len() > 0 && !strings.HasSuffix(text.String(), "\n") {
				text.WriteString("\n")
			}
		}
	}

	return text.String()
}

// decodePDFString unescapes a literal string operand. Bytes that are not
// valid UTF-8, usually glyph ids of an embedded font, are dropped along
// with control characters so they never count as extracted text.
func decodePDFString(s string) string {
	raw := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			raw = append(raw, c)
			continue
		}

		i++
		switch c = s[i]; c {
		case 'n':
			raw = append(raw, '\n')
		case 'r':
			raw = append(raw, '\r')
		case 't':
			raw = append(raw, '\t')
		case 'b', 'f':
		case '\n':
			// line continuation
		case '0', '1', '2', '3', '4', '5', '6', '7':
			code := 0
			for n := 0; n < 3 && i < len(s) && s[i] >= '0' && s[i] <= '7'; n++ {
				code = code*8 + int(s[i]-'0')
				i++
			}
			i--
			raw = append(raw, byte(code))
		default:
			raw = append(raw, c)
		}
	}

	var result strings.Builder
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		raw = raw[size:]
		if r == utf8.RuneError {
			continue
		}
		if r >= 32 && r != 127 || r == '\n' || r == '\r' || r == '\t' {
			result.WriteRune(r)
		}
	}
	return result.String()
}

package extraction

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"alfredoptarigan/hr-screening/internal/models"
)

// docxStrategy joins the non-empty paragraphs and tables in document order.
type docxStrategy struct{}

func (docxStrategy) Name() string                  { return "docx" }
func (docxStrategy) Provenance() models.Provenance { return models.ProvenanceNative }

func (docxStrategy) Extract(ctx context.Context, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docx reader panic: %v", r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat DOCX: %w", err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("failed to parse DOCX: %w", err)
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		var itemText string
		switch v := item.(type) {
		case *docx.Paragraph:
			itemText = v.String()
		case *docx.Table:
			itemText = v.String()
		}

		if itemText = strings.TrimSpace(itemText); itemText != "" {
			paragraphs = append(paragraphs, itemText)
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}

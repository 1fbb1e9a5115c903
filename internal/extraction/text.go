package extraction

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"alfredoptarigan/hr-screening/internal/models"
)

// plainTextStrategy decodes UTF-8 (or BOM-marked UTF-16) text. Invalid byte
// sequences become U+FFFD instead of failing the read.
type plainTextStrategy struct{}

func (plainTextStrategy) Name() string                  { return "plain-text" }
func (plainTextStrategy) Provenance() models.Provenance { return models.ProvenanceNative }

func (plainTextStrategy) Extract(ctx context.Context, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	return decodeText(raw)
}

func decodeText(raw []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode text: %w", err)
	}
	return string(decoded), nil
}

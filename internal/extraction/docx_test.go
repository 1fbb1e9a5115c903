package extraction

import (
	"bytes"
	"context"
	"testing"

	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/hr-screening/internal/models"
)

// buildDOCX writes one paragraph per entry; "" yields an empty paragraph.
func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	doc := docx.New()
	for _, p := range paragraphs {
		para := doc.AddParagraph()
		if p != "" {
			para.AddText(p)
		}
	}

	var buf bytes.Buffer
	_, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDocxStrategy_Extract(t *testing.T) {
	tests := []struct {
		name       string
		paragraphs []string
		want       string
	}{
		{name: "empty paragraph skipped", paragraphs: []string{"First line", "", "Second line"}, want: "First line\nSecond line"},
		{name: "document order kept", paragraphs: []string{"Skills", "Go", "SQL"}, want: "Skills\nGo\nSQL"},
		{name: "whitespace only", paragraphs: []string{"", "   "}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, "cv.docx", buildDOCX(t, tt.paragraphs...))

			got, err := docxStrategy{}.Extract(context.Background(), path)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCascade_DOCX(t *testing.T) {
	root := t.TempDir()
	c := NewCascade(&dirStore{root: root}, &fakeEngine{}, &fakeRasterizer{}, Options{})

	got, err := c.Extract(context.Background(), models.NewSourceDocument("cv.DOCX", buildDOCX(t, "Jane Doe", "", "Backend Engineer")))

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nBackend Engineer", got.Text)
	assert.Equal(t, "docx", got.Strategy)
	assert.Equal(t, models.ProvenanceNative, got.Provenance)
	assertEmptyDir(t, root)
}

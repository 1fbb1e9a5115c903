package models

import (
	"path/filepath"
	"strings"
)

// SourceDocument is an uploaded file held in memory until extraction.
type SourceDocument struct {
	FileName  string
	Extension string
	Content   []byte
}

func NewSourceDocument(fileName string, content []byte) SourceDocument {
	return SourceDocument{
		FileName:  fileName,
		Extension: strings.ToLower(filepath.Ext(fileName)),
		Content:   content,
	}
}

type Provenance string

const (
	ProvenanceNative Provenance = "native-parse"
	ProvenanceOCR    Provenance = "ocr-fallback"
)

type ExtractedText struct {
	Text       string     `json:"text"`
	Provenance Provenance `json:"provenance"`
	Strategy   string     `json:"strategy"`
}

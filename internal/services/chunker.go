package services

import (
	"strings"
	"unicode"
)

type TextChunker interface {
	Chunk(text string) []string
}

type textChunker struct {
	size    int
	overlap int
}

// NewTextChunker returns a chunker producing windows of at most size runes
// that share overlap runes with their predecessor.
func NewTextChunker(size, overlap int) TextChunker {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 4
	}
	return &textChunker{size: size, overlap: overlap}
}

// Chunk implements TextChunker. Windows end on whitespace when one is
// available in the back half of the window.
func (c *textChunker) Chunk(text string) []string {
	runes := []rune(strings.Join(strings.Fields(text), " "))
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= c.size {
		return []string{string(runes)}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + c.size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		cut := end
		for i := end; i > start+c.size/2; i-- {
			if unicode.IsSpace(runes[i]) {
				cut = i
				break
			}
		}

		chunks = append(chunks, strings.TrimSpace(string(runes[start:cut])))

		next := cut - c.overlap
		if next <= start {
			next = cut
		}
		start = next
	}

	return chunks
}

// Package chunker splits a transcript into overlapping chunks sized for
// embedding and retrieval.
package chunker

import (
	"unicode"

	"quicktube/internal/domain"
)

// Splitter cuts text on a target maximum size with a fixed overlap between
// consecutive chunks, preferring to break at paragraph, sentence, then word
// boundaries before falling back to a hard cut. Overlap exists so a fact
// spanning a chunk boundary stays retrievable from at least one chunk.
type Splitter struct {
	maxChars int
	overlap  int
}

func New(maxChars, overlap int) *Splitter {
	if maxChars <= 0 {
		maxChars = 1200
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChars {
		overlap = maxChars / 4
	}
	return &Splitter{maxChars: maxChars, overlap: overlap}
}

// Split chunks the text. Every rune of the input is covered by at least one
// chunk, boundaries are deterministic for a given configuration, and
// non-empty input always yields at least one chunk. Sizes are measured in
// runes so multi-byte text never splits mid-character.
func (s *Splitter) Split(text string) []domain.Chunk {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	var chunks []domain.Chunk
	start := 0
	for idx := 0; ; idx++ {
		end := start + s.maxChars
		if end >= len(runes) {
			chunks = append(chunks, domain.Chunk{
				Index:       idx,
				Text:        string(runes[start:]),
				StartOffset: start,
			})
			return chunks
		}
		cut := s.breakPoint(runes, start, end)
		chunks = append(chunks, domain.Chunk{
			Index:       idx,
			Text:        string(runes[start:cut]),
			StartOffset: start,
		})
		next := cut - s.overlap
		if next <= start {
			next = start + 1 // guarantee forward progress
		}
		start = next
	}
}

// breakPoint picks the cut position in (start, end], scanning backwards no
// further than half a chunk: paragraph break first, then sentence end, then
// any whitespace, else the hard limit.
func (s *Splitter) breakPoint(runes []rune, start, end int) int {
	min := start + s.maxChars/2
	for i := end; i > min; i-- {
		if runes[i-1] == '\n' {
			return i
		}
	}
	for i := end; i > min; i-- {
		r := runes[i-1]
		if (r == '.' || r == '!' || r == '?') && unicode.IsSpace(runes[i]) {
			return i
		}
	}
	for i := end; i > min; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return end
}

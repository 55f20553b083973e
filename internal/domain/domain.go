package domain

// Chunk is a bounded, possibly overlapping slice of a video transcript used
// as the retrieval unit. Chunks are immutable once produced.
type Chunk struct {
	VideoID     string
	Index       int
	Text        string
	StartOffset int     // rune offset of the chunk's first character in the joined transcript
	StartSecond float64 // approximate spoken time of the chunk's first character
}

// SearchResult represents a matching chunk with a relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

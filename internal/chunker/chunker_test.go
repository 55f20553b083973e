package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitEmpty(t *testing.T) {
	s := New(100, 20)
	require.Nil(t, s.Split(""))
}

func TestSplitShortInputSingleChunk(t *testing.T) {
	s := New(100, 20)
	chunks := s.Split("just a few words")
	require.Len(t, chunks, 1)
	require.Equal(t, "just a few words", chunks[0].Text)
	require.Equal(t, 0, chunks[0].StartOffset)
}

func TestSplitCoversEveryRune(t *testing.T) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 200)
	s := New(500, 100)
	chunks := s.Split(text)
	require.NotEmpty(t, chunks)

	total := len([]rune(text))
	require.Equal(t, 0, chunks[0].StartOffset)
	end := 0
	for i, ch := range chunks {
		n := len([]rune(ch.Text))
		require.Positive(t, n, "chunk %d empty", i)
		require.LessOrEqual(t, ch.StartOffset, end, "gap before chunk %d", i)
		if ch.StartOffset+n > end {
			end = ch.StartOffset + n
		}
		require.Equal(t, i, ch.Index)
	}
	require.Equal(t, total, end, "union of chunks must cover the whole input")
}

func TestSplitOverlap(t *testing.T) {
	text := strings.Repeat("word ", 1000)
	overlap := 50
	s := New(300, overlap)
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)
	for i := 1; i < len(chunks); i++ {
		prevEnd := chunks[i-1].StartOffset + len([]rune(chunks[i-1].Text))
		got := prevEnd - chunks[i].StartOffset
		require.GreaterOrEqual(t, got, overlap, "chunks %d and %d overlap", i-1, i)
	}
}

func TestSplitDeterministic(t *testing.T) {
	text := strings.Repeat("Some sentences here. And a few more! Are they split? ", 100)
	s := New(400, 80)
	a := s.Split(text)
	b := s.Split(text)
	require.Equal(t, a, b)
}

func TestSplitPrefersBoundaries(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta epsilon ", 100)
	s := New(200, 40)
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)
	// every cut before the final chunk lands on whitespace, never mid-word
	for _, ch := range chunks[:len(chunks)-1] {
		runes := []rune(ch.Text)
		last := runes[len(runes)-1]
		require.True(t, last == ' ' || last == '\n', "chunk ends mid-word: %q", string(runes[len(runes)-10:]))
	}
}

func TestSplitRuneSafe(t *testing.T) {
	text := strings.Repeat("víd​éo tränscript ", 200)
	s := New(150, 30)
	for _, ch := range s.Split(text) {
		require.True(t, strings.ToValidUTF8(ch.Text, "") == ch.Text, "chunk contains invalid UTF-8")
	}
}

func TestNewClampsBadConfig(t *testing.T) {
	s := New(-1, -5)
	chunks := s.Split(strings.Repeat("x ", 2000))
	require.NotEmpty(t, chunks)
	s = New(100, 100) // overlap must stay below max size
	chunks = s.Split(strings.Repeat("y ", 500))
	require.NotEmpty(t, chunks)
}

// Package transcript defines the transcript data model and the language
// fallback policy used when fetching captions for a video.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"quicktube/internal/domain"
)

// Segment is one timed caption line as returned by the transcript service.
type Segment struct {
	Text     string
	Start    float64 // seconds from the beginning of the video
	Duration float64
}

// Transcript is the full spoken text of a video. Text is the ordered
// segments joined with single spaces; Segments keeps the timing table so
// downstream code can ground timestamp claims.
type Transcript struct {
	Text     string
	Segments []Segment
}

// Errors distinguishing why a language attempt failed. Only ErrNotFound
// triggers the fallback language; disabled captions and transport errors
// surface immediately.
var (
	ErrNotFound = errors.New("no transcript in requested language")
	ErrDisabled = errors.New("transcripts are disabled for this video")
)

// LanguageFetcher fetches a transcript in one specific language.
type LanguageFetcher interface {
	FetchLanguage(ctx context.Context, videoID, language string) (Transcript, error)
}

// Fetcher retrieves the transcript for a canonical video identifier.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string) (Transcript, error)
}

// Join builds a Transcript from ordered segments.
func Join(segments []Segment) Transcript {
	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}
	return Transcript{Text: strings.Join(texts, " "), Segments: segments}
}

// StartSecondAt returns the approximate spoken time of the given rune offset
// into Text. Offsets past the end map to the last segment.
func (t Transcript) StartSecondAt(offset int) float64 {
	pos := 0
	for _, seg := range t.Segments {
		n := utf8.RuneCountInString(seg.Text)
		if offset <= pos+n {
			return seg.Start
		}
		pos += n + 1 // joining space
	}
	if len(t.Segments) > 0 {
		return t.Segments[len(t.Segments)-1].Start
	}
	return 0
}

// WithFallback applies the primary/fallback language policy over a
// LanguageFetcher: try the primary language, and only when that specific
// language is missing try exactly one fallback. Every failure is surfaced
// as domain.ErrTranscriptUnavailable carrying the underlying cause.
type WithFallback struct {
	Client   LanguageFetcher
	Primary  string
	Fallback string
}

func (f WithFallback) Fetch(ctx context.Context, videoID string) (Transcript, error) {
	primary := f.Primary
	if primary == "" {
		primary = "en"
	}
	tr, err := f.Client.FetchLanguage(ctx, videoID, primary)
	if err == nil {
		return tr, nil
	}
	if errors.Is(err, ErrNotFound) && f.Fallback != "" && f.Fallback != primary {
		tr, err = f.Client.FetchLanguage(ctx, videoID, f.Fallback)
		if err == nil {
			return tr, nil
		}
	}
	return Transcript{}, fmt.Errorf("%w: %w", domain.ErrTranscriptUnavailable, err)
}

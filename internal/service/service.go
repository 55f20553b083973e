// Package service orchestrates the RAG pipeline behind the three public
// operations: transcript, summarize, and ask.
package service

import (
	"context"
	"fmt"
	"strings"

	"quicktube/internal/chain"
	"quicktube/internal/chunker"
	"quicktube/internal/domain"
	"quicktube/internal/embedding"
	"quicktube/internal/llm"
	"quicktube/internal/session"
	"quicktube/internal/summarizer"
	"quicktube/internal/transcript"
	"quicktube/internal/vectorstore"
	"quicktube/internal/videoid"
)

// TranscriptResult is the outcome of GetTranscript.
type TranscriptResult struct {
	ID         string
	Transcript string
}

// SummaryResult is the outcome of Summarize.
type SummaryResult struct {
	ID      string
	Summary string
	Style   summarizer.Style
}

// AnswerResult is the outcome of Ask.
type AnswerResult struct {
	ID       string
	Question string
	Answer   string
}

// Service answers video questions through the session store. All three
// operations share GetOrCreate, so a repeated URL never re-fetches the
// transcript or re-embeds the chunks.
type Service struct {
	sessions *session.Store
}

func New(sessions *session.Store) *Service {
	return &Service{sessions: sessions}
}

// GetTranscript resolves the URL to a canonical id and returns the joined
// transcript text, building the session as a side effect.
func (s *Service) GetTranscript(ctx context.Context, videoURL string) (TranscriptResult, error) {
	id, err := resolve(videoURL)
	if err != nil {
		return TranscriptResult{}, err
	}
	sess, err := s.sessions.GetOrCreate(ctx, id)
	if err != nil {
		return TranscriptResult{}, err
	}
	return TranscriptResult{ID: id, Transcript: sess.Transcript.Text}, nil
}

// Summarize produces a summary of the video in the requested style. Unknown
// styles fall back to detailed.
func (s *Service) Summarize(ctx context.Context, videoURL, style string) (SummaryResult, error) {
	id, err := resolve(videoURL)
	if err != nil {
		return SummaryResult{}, err
	}
	sess, err := s.sessions.GetOrCreate(ctx, id)
	if err != nil {
		return SummaryResult{}, err
	}
	st := summarizer.Normalize(style)
	summary, err := summarizer.Summarize(ctx, sess, st)
	if err != nil {
		return SummaryResult{}, err
	}
	return SummaryResult{ID: id, Summary: summary, Style: st}, nil
}

// Ask answers a question about the video from its transcript.
func (s *Service) Ask(ctx context.Context, videoURL, question string) (AnswerResult, error) {
	id, err := resolve(videoURL)
	if err != nil {
		return AnswerResult{}, err
	}
	if strings.TrimSpace(question) == "" {
		return AnswerResult{}, fmt.Errorf("%w: question is required", domain.ErrInvalidInput)
	}
	sess, err := s.sessions.GetOrCreate(ctx, id)
	if err != nil {
		return AnswerResult{}, err
	}
	answer, err := sess.Chain.Invoke(ctx, question)
	if err != nil {
		return AnswerResult{}, err
	}
	return AnswerResult{ID: id, Question: question, Answer: answer}, nil
}

func resolve(videoURL string) (string, error) {
	url := strings.TrimSpace(videoURL)
	if url == "" {
		return "", fmt.Errorf("%w: video_url is required", domain.ErrInvalidInput)
	}
	return videoid.Extract(url), nil
}

// PipelineConfig wires the collaborators of the session build pipeline.
// NewEmbedder and NewStorage are factories because local embedders and
// per-video collections need a fresh instance per session.
type PipelineConfig struct {
	Fetcher     transcript.Fetcher
	Splitter    *chunker.Splitter
	NewEmbedder func() embedding.Embedder
	NewStorage  func(videoID string) vectorstore.Storage
	Model       llm.ChatModel
	TopK        int
}

// NewBuilder assembles the fetch→chunk→index→chain pipeline as a session
// build function for the store.
func NewBuilder(cfg PipelineConfig) session.BuildFunc {
	return func(ctx context.Context, videoID string) (*session.Session, error) {
		tr, err := cfg.Fetcher.Fetch(ctx, videoID)
		if err != nil {
			return nil, err
		}
		chunks := cfg.Splitter.Split(tr.Text)
		for i := range chunks {
			chunks[i].VideoID = videoID
			chunks[i].StartSecond = tr.StartSecondAt(chunks[i].StartOffset)
		}
		index, err := vectorstore.Build(ctx, cfg.NewEmbedder(), cfg.NewStorage(videoID), chunks)
		if err != nil {
			return nil, err
		}
		return &session.Session{
			ID:         videoID,
			Transcript: tr,
			Chunks:     chunks,
			Index:      index,
			Chain:      chain.New(index, cfg.Model, cfg.TopK),
		}, nil
	}
}

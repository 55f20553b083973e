// Package summarizer turns a summary style into a synthetic instruction and
// routes it through the video's answer chain. Summarization is a
// parameterized question, not a separate code path.
package summarizer

import (
	"context"

	"quicktube/internal/domain"
	"quicktube/internal/session"
)

// Style selects the shape of the generated summary.
type Style string

const (
	StyleBrief    Style = "brief"
	StyleDetailed Style = "detailed"
	StyleBullets  Style = "bullets"
)

// Normalize maps unknown or empty style values to detailed.
func Normalize(style string) Style {
	switch Style(style) {
	case StyleBrief, StyleDetailed, StyleBullets:
		return Style(style)
	default:
		return StyleDetailed
	}
}

var instructions = map[Style]string{
	StyleBrief:    "Summarize this video in 2-3 sentences.",
	StyleDetailed: "Provide a detailed summary of this video in 3-4 paragraphs.",
	StyleBullets:  "Create a bullet-point summary of this video with 5-7 key points.",
}

// Instruction returns the synthetic question for a style.
func Instruction(style Style) string { return instructions[Normalize(string(style))] }

// Summarize issues the style's instruction through the session's answer
// chain exactly as a user question would be.
func Summarize(ctx context.Context, sess *session.Session, style Style) (string, error) {
	if sess == nil || sess.Chain == nil {
		return "", domain.ErrChainNotReady
	}
	return sess.Chain.Invoke(ctx, Instruction(style))
}

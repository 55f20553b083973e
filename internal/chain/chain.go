// Package chain composes a retriever, a prompt contract, and a chat model
// into a single question-to-answer transform.
package chain

import (
	"context"
	"fmt"
	"strings"

	"quicktube/internal/domain"
	"quicktube/internal/llm"
	"quicktube/internal/vectorstore"
)

// NotFoundAnswer is the designated reply when the retrieved context does not
// support an answer. The prompt pins this phrasing so it is testable.
const NotFoundAnswer = "I don't know based on this video."

const groundingPrompt = `You answer questions about a single video using only the transcript excerpts provided as context. Rules:
- Use only the context. Do not add outside knowledge or guesses.
- If the context does not contain the answer, reply exactly: "` + NotFoundAnswer + `"
- Each excerpt starts with its approximate [mm:ss] position in the video; mention a timestamp when it helps the viewer find the moment.
- If asked to summarize, summarize the provided context.`

const smallTalkPrompt = `You are a friendly assistant embedded in a video question-answering tool. Reply to the user's conversational message naturally and briefly, in one or two sentences.`

const answerTemplate = `Context from the video transcript:

%s

Question: %s

Answer:`

// Chain answers questions about one video by retrieval-conditioned
// generation. It is bound to the video's index and owned by its session.
type Chain struct {
	index *vectorstore.Index
	model llm.ChatModel
	topK  int
}

// New binds a chain to an index and a chat model. topK controls how many
// chunks feed the prompt: more context, more tokens, more dilution risk.
func New(index *vectorstore.Index, model llm.ChatModel, topK int) *Chain {
	if topK <= 0 {
		topK = 6
	}
	return &Chain{index: index, model: model, topK: topK}
}

// Invoke answers a question. Conversational inputs get a natural reply
// without retrieval; everything else is answered strictly from the top-k
// retrieved chunks.
func (c *Chain) Invoke(ctx context.Context, question string) (string, error) {
	if c == nil || c.index == nil {
		return "", domain.ErrChainNotReady
	}
	q := strings.TrimSpace(question)
	if q == "" {
		return "", fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	if IsConversational(q) {
		out, err := c.model.Complete(ctx, smallTalkPrompt, q)
		if err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
		}
		return out, nil
	}

	chunks, err := c.index.Search(ctx, q, c.topK)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	user := fmt.Sprintf(answerTemplate, formatContext(chunks), q)
	out, err := c.model.Complete(ctx, groundingPrompt, user)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	return out, nil
}

// IsConversational reports whether the input is small talk (greeting,
// acknowledgement, thanks) rather than a question about the video. These
// inputs are exempt from the strict-grounding rule.
func IsConversational(input string) bool {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.TrimRight(s, ".!?")
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if _, ok := smallTalk[s]; ok {
		return true
	}
	for _, prefix := range []string{"thank you", "thanks "} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

var smallTalk = map[string]struct{}{
	"hi":           {},
	"hello":        {},
	"hey":          {},
	"yo":           {},
	"good morning": {},
	"good evening": {},
	"good night":   {},
	"thanks":       {},
	"thank you":    {},
	"thx":          {},
	"ok":           {},
	"okay":         {},
	"cool":         {},
	"great":        {},
	"nice":         {},
	"got it":       {},
	"bye":          {},
	"goodbye":      {},
	"see you":      {},
	"how are you":  {},
}

// formatContext concatenates chunk texts in retrieval order, each prefixed
// with the approximate time its text is spoken.
func formatContext(chunks []domain.Chunk) string {
	parts := make([]string, len(chunks))
	for i, ch := range chunks {
		parts[i] = fmt.Sprintf("[%s] %s", formatTimestamp(ch.StartSecond), ch.Text)
	}
	return strings.Join(parts, "\n\n")
}

func formatTimestamp(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

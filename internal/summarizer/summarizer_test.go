package summarizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"quicktube/internal/chain"
	"quicktube/internal/domain"
	"quicktube/internal/embedding/tfidf"
	"quicktube/internal/session"
	"quicktube/internal/vectorstore"
	"quicktube/internal/vectorstore/memory"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want Style
	}{
		{"brief", StyleBrief},
		{"detailed", StyleDetailed},
		{"bullets", StyleBullets},
		{"", StyleDetailed},
		{"verbose", StyleDetailed},
		{"BRIEF", StyleDetailed}, // styles are case sensitive
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Normalize(tt.in), "style %q", tt.in)
	}
}

func TestInstructionPerStyle(t *testing.T) {
	require.Contains(t, Instruction(StyleBrief), "2-3 sentences")
	require.Contains(t, Instruction(StyleDetailed), "3-4 paragraphs")
	require.Contains(t, Instruction(StyleBullets), "5-7 key points")
	require.Equal(t, Instruction(StyleDetailed), Instruction(Style("nonsense")))
}

type captureModel struct {
	lastUser string
}

func (m *captureModel) Complete(_ context.Context, _, user string) (string, error) {
	m.lastUser = user
	return "a summary", nil
}

func TestSummarizeRoutesThroughChain(t *testing.T) {
	chunks := []domain.Chunk{
		{Index: 0, Text: "Today we explore the history of the printing press."},
		{Index: 1, Text: "Gutenberg introduced movable type in Europe."},
	}
	ix, err := vectorstore.Build(context.Background(), tfidf.NewEmbedder(), memory.NewStorage(), chunks)
	require.NoError(t, err)

	model := &captureModel{}
	sess := &session.Session{ID: "vid", Index: ix, Chain: chain.New(ix, model, 2)}

	out, err := Summarize(context.Background(), sess, StyleBrief)
	require.NoError(t, err)
	require.Equal(t, "a summary", out)
	require.Contains(t, model.lastUser, Instruction(StyleBrief), "the style instruction is asked as a question")
	require.Contains(t, model.lastUser, "printing press", "retrieved context feeds the summary prompt")
}

func TestSummarizeNilSession(t *testing.T) {
	_, err := Summarize(context.Background(), nil, StyleBrief)
	require.ErrorIs(t, err, domain.ErrChainNotReady)

	_, err = Summarize(context.Background(), &session.Session{ID: "vid"}, StyleBrief)
	require.ErrorIs(t, err, domain.ErrChainNotReady)
}

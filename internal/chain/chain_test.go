package chain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"quicktube/internal/domain"
	"quicktube/internal/embedding/tfidf"
	"quicktube/internal/vectorstore"
	"quicktube/internal/vectorstore/memory"
)

type fakeModel struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
	calls      int
}

func (m *fakeModel) Complete(_ context.Context, system, user string) (string, error) {
	m.calls++
	m.lastSystem = system
	m.lastUser = user
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func testIndex(t *testing.T) *vectorstore.Index {
	t.Helper()
	chunks := []domain.Chunk{
		{VideoID: "vid", Index: 0, Text: "The capital of France is Paris.", StartSecond: 0},
		{VideoID: "vid", Index: 1, Text: "The meeting is scheduled for 3 PM.", StartSecond: 75},
	}
	ix, err := vectorstore.Build(context.Background(), tfidf.NewEmbedder(), memory.NewStorage(), chunks)
	require.NoError(t, err)
	return ix
}

func TestInvokeNotReady(t *testing.T) {
	var c *Chain
	_, err := c.Invoke(context.Background(), "anything")
	require.ErrorIs(t, err, domain.ErrChainNotReady)

	c = &Chain{}
	_, err = c.Invoke(context.Background(), "anything")
	require.ErrorIs(t, err, domain.ErrChainNotReady)
}

func TestInvokeEmptyQuestion(t *testing.T) {
	c := New(testIndex(t), &fakeModel{}, 2)
	_, err := c.Invoke(context.Background(), "   ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvokeGroundsPromptInRetrievedContext(t *testing.T) {
	model := &fakeModel{reply: "The meeting is at 3 PM."}
	c := New(testIndex(t), model, 2)

	answer, err := c.Invoke(context.Background(), "What time is the meeting?")
	require.NoError(t, err)
	require.Equal(t, "The meeting is at 3 PM.", answer)

	require.Contains(t, model.lastSystem, NotFoundAnswer)
	require.Contains(t, model.lastUser, "The meeting is scheduled for 3 PM.")
	require.Contains(t, model.lastUser, "What time is the meeting?")
	require.Contains(t, model.lastUser, "[01:15]", "context excerpts carry their timestamp")
}

func TestInvokeSmallTalkSkipsRetrieval(t *testing.T) {
	model := &fakeModel{reply: "Hello! Ask me anything about the video."}
	c := New(testIndex(t), model, 2)

	answer, err := c.Invoke(context.Background(), "hello!")
	require.NoError(t, err)
	require.Equal(t, "Hello! Ask me anything about the video.", answer)
	require.Equal(t, smallTalkPrompt, model.lastSystem)
	require.NotContains(t, model.lastUser, "Context from the video transcript")
}

func TestInvokeWrapsModelFailure(t *testing.T) {
	cause := errors.New("rate limited")
	c := New(testIndex(t), &fakeModel{err: cause}, 2)

	_, err := c.Invoke(context.Background(), "What time is the meeting?")
	require.ErrorIs(t, err, domain.ErrGenerationFailed)
	require.ErrorIs(t, err, cause)
}

func TestIsConversational(t *testing.T) {
	conversational := []string{
		"hi", "Hello", "HEY", "thanks!", "Thank you.", "thanks a lot",
		"thank you so much!", "ok", "Got it", "how are you?", "bye",
	}
	for _, in := range conversational {
		require.True(t, IsConversational(in), "%q should be conversational", in)
	}

	questions := []string{
		"",
		"What is the capital of France?",
		"hello, what does the speaker say about Paris?",
		"Is the meeting at 3 PM?",
		"summarize the video",
	}
	for _, in := range questions {
		require.False(t, IsConversational(in), "%q should not be conversational", in)
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{59.9, "00:59"},
		{75, "01:15"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, formatTimestamp(tt.seconds))
	}
}

func TestFormatContextJoinsExcerpts(t *testing.T) {
	got := formatContext([]domain.Chunk{
		{Text: "first excerpt", StartSecond: 0},
		{Text: "second excerpt", StartSecond: 90},
	})
	require.Equal(t, "[00:00] first excerpt\n\n[01:30] second excerpt", got)
	require.Equal(t, 2, strings.Count(got, "["))
}

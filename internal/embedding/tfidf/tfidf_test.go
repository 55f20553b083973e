package tfidf

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var corpus = []string{
	"The capital of France is Paris.",
	"The meeting is scheduled for three in the afternoon.",
	"Paris hosts the meeting about European capitals.",
}

func TestEmbedRequiresPrepare(t *testing.T) {
	e := NewEmbedder()
	_, err := e.Embed(context.Background(), []string{"hello"})
	require.Error(t, err)
}

func TestPrepareEmptyCorpus(t *testing.T) {
	e := NewEmbedder()
	require.Error(t, e.Prepare(context.Background(), nil))
}

func TestEmbedNormalized(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare(context.Background(), corpus))
	require.Positive(t, e.Dimension())

	vecs, err := e.Embed(context.Background(), corpus)
	require.NoError(t, err)
	require.Len(t, vecs, len(corpus))
	for i, v := range vecs {
		require.Len(t, v, e.Dimension())
		norm := 0.0
		for _, x := range v {
			norm += x * x
		}
		require.InDelta(t, 1.0, math.Sqrt(norm), 1e-9, "vector %d not unit length", i)
	}
}

func TestEmbedDeterministic(t *testing.T) {
	a := NewEmbedder()
	b := NewEmbedder()
	require.NoError(t, a.Prepare(context.Background(), corpus))
	require.NoError(t, b.Prepare(context.Background(), corpus))

	va, err := a.Embed(context.Background(), []string{"meeting in Paris"})
	require.NoError(t, err)
	vb, err := b.Embed(context.Background(), []string{"meeting in Paris"})
	require.NoError(t, err)
	require.Equal(t, va, vb)
}

func TestEmbedUnknownTokensZeroVector(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare(context.Background(), corpus))

	vecs, err := e.Embed(context.Background(), []string{"quantum chromodynamics"})
	require.NoError(t, err)
	for _, x := range vecs[0] {
		require.Zero(t, x)
	}
}

func TestSimilarTextsScoreHigher(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare(context.Background(), corpus))

	vecs, err := e.Embed(context.Background(), append([]string{"What is the capital of France?"}, corpus...))
	require.NoError(t, err)
	query := vecs[0]
	france := dot(query, vecs[1])
	meeting := dot(query, vecs[2])
	require.Greater(t, france, meeting, "chunk about France should score above the meeting chunk")
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

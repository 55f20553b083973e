// Package vectorstore builds and queries the per-video similarity index.
package vectorstore

import (
	"context"
	"fmt"

	"quicktube/internal/domain"
	"quicktube/internal/embedding"
)

// Index owns the embedded representation of one video's chunks. Chunks are
// embedded exactly once at build time; searches only embed the query.
type Index struct {
	embedder embedding.Embedder
	store    Storage
	size     int
}

// Build embeds the chunk set and loads it into the store. Any upstream
// failure is wrapped in domain.ErrIndexBuildFailed so the session is never
// published half-built.
func Build(ctx context.Context, emb embedding.Embedder, store Storage, chunks []domain.Chunk) (*Index, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no chunks to index", domain.ErrIndexBuildFailed)
	}
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	if err := emb.Prepare(ctx, texts); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexBuildFailed, err)
	}
	vectors, err := emb.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexBuildFailed, err)
	}
	if err := store.Init(ctx, emb.Dimension()); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexBuildFailed, err)
	}
	if err := store.Upsert(ctx, chunks, vectors); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexBuildFailed, err)
	}
	return &Index{embedder: emb, store: store, size: len(chunks)}, nil
}

// Size reports how many chunks the index holds.
func (ix *Index) Size() int { return ix.size }

// Search embeds the query and returns the min(topK, Size) nearest chunks,
// most relevant first.
func (ix *Index) Search(ctx context.Context, query string, topK int) ([]domain.Chunk, error) {
	vecs, err := ix.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	results, err := ix.store.Search(ctx, vecs[0], topK)
	if err != nil {
		return nil, err
	}
	chunks := make([]domain.Chunk, len(results))
	for i, r := range results {
		chunks[i] = r.Chunk
	}
	return chunks, nil
}

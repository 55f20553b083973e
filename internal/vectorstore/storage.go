package vectorstore

import (
	"context"

	"quicktube/internal/domain"
)

// Storage holds the chunk vectors of one video and supports similarity
// search. A store instance is exclusively owned by its session's index.
type Storage interface {
	Init(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, chunks []domain.Chunk, vectors [][]float64) error
	Search(ctx context.Context, vector []float64, topK int) ([]domain.SearchResult, error)
	Clear(ctx context.Context) error
}

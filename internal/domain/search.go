package domain

import "context"

// SimilaritySearcher defines vector search over the chunk corpus.
type SimilaritySearcher interface {
	// SearchSimilar returns chunks whose similarity to the query vector is
	// at least threshold, ordered by similarity descending, capped at limit.
	SearchSimilar(ctx context.Context, queryVector []float32, threshold float64, limit int) ([]RetrievedChunk, error)

	// RecentChunks returns the most recently ingested chunks regardless of
	// similarity. Used as a last-resort context source for unscoped requests.
	RecentChunks(ctx context.Context, limit int) ([]RetrievedChunk, error)
}

package retrieval

import (
	"context"
	"log/slog"
	"sort"

	"qa-orchestrator/internal/domain"

	"golang.org/x/sync/errgroup"
)

// AggregateResults embeds every variant and runs one similarity search per
// variant concurrently (Stage 2). A failed variant is logged and skipped,
// never fatal. The pooled results keep the first-seen entry per chunk id,
// pooled in variant order so the merge is insertion-order-independent of
// goroutine scheduling, then stable-sorted by similarity descending.
func AggregateResults(
	ctx context.Context,
	sc *StageContext,
	embedder domain.Embedder,
	searcher domain.SimilaritySearcher,
	logger *slog.Logger,
) error {
	type variantResult struct {
		chunks []domain.RetrievedChunk
		tokens int
	}
	results := make([]variantResult, len(sc.Variants))

	g, gctx := errgroup.WithContext(ctx)
	for i, variant := range sc.Variants {
		g.Go(func() error {
			embedding, err := embedder.Embed(gctx, variant)
			if err != nil {
				logger.Warn("variant_embedding_failed",
					slog.String("request_id", sc.RequestID),
					slog.String("variant", variant),
					slog.String("error", err.Error()))
				return nil // non-fatal
			}
			results[i].tokens = embedding.Tokens

			chunks, err := searcher.SearchSimilar(gctx, embedding.Vector, sc.Config.SimilarityThreshold, sc.Config.PerVariantLimit)
			if err != nil {
				logger.Warn("variant_search_failed",
					slog.String("request_id", sc.RequestID),
					slog.String("variant", variant),
					slog.String("error", err.Error()))
				return nil // non-fatal
			}
			results[i].chunks = chunks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	seen := make(map[string]struct{})
	var pool []domain.RetrievedChunk
	for _, res := range results {
		sc.EmbeddingTokens += res.tokens
		for _, chunk := range res.chunks {
			if _, dup := seen[chunk.ChunkID]; dup {
				// First sighting wins; similarity is not recomputed.
				continue
			}
			seen[chunk.ChunkID] = struct{}{}
			pool = append(pool, chunk)
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Similarity > pool[j].Similarity
	})
	sc.Pool = pool

	logger.Info("retrieval_aggregated",
		slog.String("request_id", sc.RequestID),
		slog.Int("variant_count", len(sc.Variants)),
		slog.Int("chunk_count", len(pool)),
		slog.Int("embedding_tokens", sc.EmbeddingTokens))
	return nil
}

package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"qa-orchestrator/internal/domain"
)

// ApplyScope narrows the ranked pool to the caller's allow-lists
// (Stage 3). The document allow-list applies first, then the category
// allow-list resolved through the document store. Relative chunk order is
// preserved.
func ApplyScope(
	ctx context.Context,
	sc *StageContext,
	docs domain.DocumentStore,
	logger *slog.Logger,
) error {
	if !sc.Scope.Requested() {
		return nil
	}
	before := len(sc.Pool)

	if len(sc.Scope.DocumentIDs) > 0 {
		sc.Pool = keepDocuments(sc.Pool, toSet(sc.Scope.DocumentIDs))
	}

	if len(sc.Scope.Categories) > 0 {
		ids, err := docs.DocumentIDsByCategories(ctx, sc.Scope.Categories)
		if err != nil {
			return fmt.Errorf("failed to resolve categories %v: %w", sc.Scope.Categories, err)
		}
		sc.Pool = keepDocuments(sc.Pool, toSet(ids))
	}

	logger.Info("scope_applied",
		slog.String("request_id", sc.RequestID),
		slog.Int("document_filter", len(sc.Scope.DocumentIDs)),
		slog.Int("category_filter", len(sc.Scope.Categories)),
		slog.Int("chunks_before", before),
		slog.Int("chunks_after", len(sc.Pool)))
	return nil
}

func keepDocuments(pool []domain.RetrievedChunk, allowed map[string]struct{}) []domain.RetrievedChunk {
	kept := make([]domain.RetrievedChunk, 0, len(pool))
	for _, chunk := range pool {
		if _, ok := allowed[chunk.DocumentID]; ok {
			kept = append(kept, chunk)
		}
	}
	return kept
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

package retrieval

import (
	"context"
	"errors"
	"log/slog"

	"qa-orchestrator/internal/domain"
)

var (
	// ErrScopedEmpty signals that an explicitly scoped request matched no
	// chunks. Substituting unscoped content here would violate the
	// caller's restriction, so no fallback is attempted.
	ErrScopedEmpty = errors.New("no chunks matched the requested scope")

	// ErrNoContext signals that an unscoped request found nothing and the
	// recent-chunks fallback was also empty.
	ErrNoContext = errors.New("no context available for this question")
)

// AssembleContext joins the surviving chunks with document metadata
// (Stage 4). When an unscoped request retrieved nothing, a small
// most-recently-ingested chunk set is substituted as a last resort.
func AssembleContext(
	ctx context.Context,
	sc *StageContext,
	docs domain.DocumentStore,
	searcher domain.SimilaritySearcher,
	logger *slog.Logger,
) error {
	if len(sc.Pool) == 0 {
		if sc.Scope.Requested() {
			return ErrScopedEmpty
		}
		recent, err := searcher.RecentChunks(ctx, sc.Config.FallbackLimit)
		if err != nil {
			logger.Warn("fallback_retrieval_failed",
				slog.String("request_id", sc.RequestID),
				slog.String("error", err.Error()))
		} else if len(recent) > 0 {
			sc.Pool = recent
			sc.UsedFallback = true
			logger.Info("fallback_context_used",
				slog.String("request_id", sc.RequestID),
				slog.Int("chunk_count", len(recent)))
		}
		if len(sc.Pool) == 0 {
			return ErrNoContext
		}
	}

	metaByID := lookupDocuments(ctx, sc, docs, logger)

	enriched := make([]domain.EnrichedChunk, 0, len(sc.Pool))
	for _, chunk := range sc.Pool {
		item := domain.EnrichedChunk{RetrievedChunk: chunk}
		if meta, ok := metaByID[chunk.DocumentID]; ok {
			item.FilePath = meta.FilePath
			item.FileType = meta.FileType
			if item.DocumentTitle == "" {
				item.DocumentTitle = meta.Title
			}
		}
		enriched = append(enriched, item)
	}
	sc.Enriched = enriched
	return nil
}

// lookupDocuments fetches metadata for every distinct document in the
// pool. A failed lookup degrades to citations without file info rather
// than failing the request.
func lookupDocuments(
	ctx context.Context,
	sc *StageContext,
	docs domain.DocumentStore,
	logger *slog.Logger,
) map[string]domain.DocumentMeta {
	seen := make(map[string]struct{}, len(sc.Pool))
	ids := make([]string, 0, len(sc.Pool))
	for _, chunk := range sc.Pool {
		if _, dup := seen[chunk.DocumentID]; dup {
			continue
		}
		seen[chunk.DocumentID] = struct{}{}
		ids = append(ids, chunk.DocumentID)
	}

	metas, err := docs.DocumentsByIDs(ctx, ids)
	if err != nil {
		logger.Warn("document_metadata_lookup_failed",
			slog.String("request_id", sc.RequestID),
			slog.String("error", err.Error()))
		return nil
	}

	byID := make(map[string]domain.DocumentMeta, len(metas))
	for _, meta := range metas {
		byID[meta.ID] = meta
	}
	return byID
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"qa-orchestrator/internal/domain"
	"qa-orchestrator/internal/usecase/retrieval"

	"github.com/google/uuid"
)

// RetrieveContextInput defines the input parameters for retrieve-only
// requests.
type RetrieveContextInput struct {
	Question            string
	SelectedDocumentIDs []string
	SelectedCategories  []string
}

// RetrieveContextOutput carries the ranked, scope-filtered, enriched
// chunk set without generation.
type RetrieveContextOutput struct {
	RequestID       string
	Chunks          []domain.EnrichedChunk
	EmbeddingTokens int
	UsedFallback    bool
}

// RetrieveContextUsecase exposes the retrieval half of the pipeline on
// its own, for callers that want passages without an answer.
type RetrieveContextUsecase interface {
	Execute(ctx context.Context, input RetrieveContextInput) (*RetrieveContextOutput, error)
}

type retrieveContextUsecase struct {
	embedder domain.Embedder
	searcher domain.SimilaritySearcher
	docs     domain.DocumentStore
	cfg      retrieval.Config
	logger   *slog.Logger
}

// NewRetrieveContextUsecase creates a retrieve-only usecase sharing the
// same staged retrieval pipeline as question answering.
func NewRetrieveContextUsecase(
	embedder domain.Embedder,
	searcher domain.SimilaritySearcher,
	docs domain.DocumentStore,
	cfg retrieval.Config,
	logger *slog.Logger,
) RetrieveContextUsecase {
	return &retrieveContextUsecase{
		embedder: embedder,
		searcher: searcher,
		docs:     docs,
		cfg:      cfg,
		logger:   logger,
	}
}

func (u *retrieveContextUsecase) Execute(ctx context.Context, input RetrieveContextInput) (*RetrieveContextOutput, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, fmt.Errorf("question is required")
	}

	sc := &retrieval.StageContext{
		RequestID: uuid.NewString(),
		Question:  question,
		Scope: retrieval.Scope{
			DocumentIDs: input.SelectedDocumentIDs,
			Categories:  input.SelectedCategories,
		},
		Config: u.cfg,
	}
	sc.Variants = retrieval.ExpandQuestion(question, u.cfg.DomainContext)

	if err := retrieval.AggregateResults(ctx, sc, u.embedder, u.searcher, u.logger); err != nil {
		return nil, fmt.Errorf("failed to aggregate retrieval results: %w", err)
	}
	if err := retrieval.ApplyScope(ctx, sc, u.docs, u.logger); err != nil {
		return nil, err
	}
	if err := retrieval.AssembleContext(ctx, sc, u.docs, u.searcher, u.logger); err != nil {
		return nil, err
	}

	return &RetrieveContextOutput{
		RequestID:       sc.RequestID,
		Chunks:          sc.Enriched,
		EmbeddingTokens: sc.EmbeddingTokens,
		UsedFallback:    sc.UsedFallback,
	}, nil
}

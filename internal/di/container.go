package di

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"qa-orchestrator/internal/adapter/llmgateway"
	"qa-orchestrator/internal/adapter/repository"
	"qa-orchestrator/internal/adapter/storagehttp"
	"qa-orchestrator/internal/domain"
	"qa-orchestrator/internal/infra/config"
	"qa-orchestrator/internal/infra/httpclient"
	"qa-orchestrator/internal/usecase"
	"qa-orchestrator/internal/usecase/retrieval"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	// Repositories
	Searcher  domain.SimilaritySearcher
	Documents domain.DocumentStore
	UsageSink domain.UsageSink

	// Usecases
	AskUsecase      usecase.AskQuestionUsecase
	RetrieveUsecase usecase.RetrieveContextUsecase

	// Adapters exposed for handler wiring
	Embedder domain.Embedder
	Signer   domain.FileSigner
}

// NewApplicationComponents wires all dependencies from config and database pool.
func NewApplicationComponents(cfg *config.Config, pool *pgxpool.Pool, log *slog.Logger) (*ApplicationComponents, error) {
	// Repositories
	searcher := repository.NewChunkRepository(pool)
	documents := repository.NewDocumentRepository(pool)
	usageSink := repository.NewUsageRepository(pool)

	// Shared HTTP clients with connection pooling
	embedderHTTP := httpclient.NewPooledClient(time.Duration(cfg.EmbedderTimeout) * time.Second)
	completionHTTP := httpclient.NewPooledClient(time.Duration(cfg.CompletionTimeout) * time.Second)
	signerHTTP := httpclient.NewPooledClient(time.Duration(cfg.StorageSignerTimeout) * time.Second)

	// External clients
	embedder := llmgateway.NewOllamaEmbedder(cfg.EmbedderURL, cfg.EmbeddingModel, embedderHTTP)
	completion := llmgateway.NewOllamaCompletionClient(cfg.CompletionURL, completionHTTP, cfg.CompletionRPS)
	signer := storagehttp.NewSignerClient(cfg.StorageSignerURL, signerHTTP)

	// Question gate
	gate, err := usecase.NewQuestionGate(cfg.DisallowedPatterns, cfg.OffTopicKeywords)
	if err != nil {
		return nil, fmt.Errorf("failed to build question gate: %w", err)
	}

	// Retrieval config
	retrievalCfg := retrieval.Config{
		SimilarityThreshold: cfg.SimilarityThreshold,
		PerVariantLimit:     cfg.PerVariantLimit,
		FallbackLimit:       cfg.FallbackChunkLimit,
		DomainContext:       cfg.DomainContext,
	}
	if err := retrievalCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retrieval config: %w", err)
	}

	// Generation chain
	chain, err := usecase.NewGenerationChain(completion, usecase.GenerationConfig{
		Models:      cfg.CompletionModels,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build generation chain: %w", err)
	}

	promptBuilder := usecase.NewGroundedPromptBuilder()
	enricher := usecase.NewCitationEnricher(signer, log)
	costs := usecase.DefaultCostTable().WithOverrides(cfg.ModelCostOverrides)
	accountant := usecase.NewUsageAccountant(costs, usageSink, log)

	askUsecase := usecase.NewAskQuestionUsecase(
		gate, embedder, searcher, documents,
		promptBuilder, chain, enricher, accountant,
		retrievalCfg, cfg.IncludeDebugPrompts, log,
	)
	retrieveUsecase := usecase.NewRetrieveContextUsecase(
		embedder, searcher, documents, retrievalCfg, log,
	)

	return &ApplicationComponents{
		Searcher:        searcher,
		Documents:       documents,
		UsageSink:       usageSink,
		AskUsecase:      askUsecase,
		RetrieveUsecase: retrieveUsecase,
		Embedder:        embedder,
		Signer:          signer,
	}, nil
}

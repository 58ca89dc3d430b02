package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"qa-orchestrator/internal/domain"
	"qa-orchestrator/internal/usecase/retrieval"

	"github.com/google/uuid"
)

// User-facing messages for every terminal failure. Callers render these
// uniformly; no pipeline failure surfaces as a raised error.
const (
	msgQuestionTooShort = "Your question is too short. Please ask a question of at least 5 characters."
	msgQuestionTooLong  = "Your question is too long. Please keep it under 5000 characters."
	msgDisallowed       = "This question cannot be answered here. Please rephrase it."
	msgOffTopic         = "This question appears to be outside the scope of the document library."
	msgScopedEmpty      = "No relevant passages were found in the selected documents or categories. Try widening the selection or rephrasing the question."
	msgNoContext        = "No relevant information was found for this question. Try rephrasing it."
	msgRetrievalFailed  = "Something went wrong while searching the document library. Please try again."
	msgGenerationFailed = "The answer could not be generated: "
)

// AskQuestionInput carries one question plus the caller's optional scope.
type AskQuestionInput struct {
	Question            string
	RequesterID         string
	SelectedDocumentIDs []string
	SelectedCategories  []string
}

// RAGResult is the terminal value of the pipeline: either a failure with a
// user-facing message, or a grounded answer with citations and accounting.
type RAGResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`

	Answer              string      `json:"answer,omitempty"`
	Summary             string      `json:"summary,omitempty"`
	Citations           []Citation  `json:"citations,omitempty"`
	AnswerReadingTime   string      `json:"answer_reading_time,omitempty"`
	SummaryReadingTime  string      `json:"summary_reading_time,omitempty"`
	ModelUsed           string      `json:"model_used,omitempty"`
	TokenUsage          TokenUsage  `json:"token_usage"`
	EstimatedCost       float64     `json:"estimated_cost"`
	UsedFallbackContext bool        `json:"used_fallback_context,omitempty"`
	DebugPrompts        *PromptPair `json:"debug_prompts,omitempty"`
	RequestID           string      `json:"request_id"`
}

// AskQuestionUsecase defines the single operation this service exposes.
type AskQuestionUsecase interface {
	Execute(ctx context.Context, input AskQuestionInput) *RAGResult
}

type askQuestionUsecase struct {
	gate         *QuestionGate
	embedder     domain.Embedder
	searcher     domain.SimilaritySearcher
	docs         domain.DocumentStore
	prompts      PromptBuilder
	chain        *GenerationChain
	citations    *CitationEnricher
	usage        *UsageAccountant
	retrievalCfg retrieval.Config
	includeDebug bool
	logger       *slog.Logger
}

// NewAskQuestionUsecase wires together the full question-answering
// pipeline.
func NewAskQuestionUsecase(
	gate *QuestionGate,
	embedder domain.Embedder,
	searcher domain.SimilaritySearcher,
	docs domain.DocumentStore,
	prompts PromptBuilder,
	chain *GenerationChain,
	citations *CitationEnricher,
	usage *UsageAccountant,
	retrievalCfg retrieval.Config,
	includeDebug bool,
	logger *slog.Logger,
) AskQuestionUsecase {
	return &askQuestionUsecase{
		gate:         gate,
		embedder:     embedder,
		searcher:     searcher,
		docs:         docs,
		prompts:      prompts,
		chain:        chain,
		citations:    citations,
		usage:        usage,
		retrievalCfg: retrievalCfg,
		includeDebug: includeDebug,
		logger:       logger,
	}
}

func (u *askQuestionUsecase) Execute(ctx context.Context, input AskQuestionInput) *RAGResult {
	requestID := uuid.NewString()
	question := strings.TrimSpace(input.Question)

	if err := u.gate.Validate(question); err != nil {
		u.logger.Info("question_rejected",
			slog.String("request_id", requestID),
			slog.String("reason", err.Error()))
		return failure(requestID, gateMessage(err))
	}

	sc := &retrieval.StageContext{
		RequestID: requestID,
		Question:  question,
		Scope: retrieval.Scope{
			DocumentIDs: input.SelectedDocumentIDs,
			Categories:  input.SelectedCategories,
		},
		Config: u.retrievalCfg,
	}
	sc.Variants = retrieval.ExpandQuestion(question, u.retrievalCfg.DomainContext)

	if err := retrieval.AggregateResults(ctx, sc, u.embedder, u.searcher, u.logger); err != nil {
		u.logger.Error("retrieval_failed",
			slog.String("request_id", requestID),
			slog.String("error", err.Error()))
		return failure(requestID, msgRetrievalFailed)
	}

	if err := retrieval.ApplyScope(ctx, sc, u.docs, u.logger); err != nil {
		// An infrastructure failure, not an empty scope.
		u.logger.Error("scope_resolution_failed",
			slog.String("request_id", requestID),
			slog.String("error", err.Error()))
		return failure(requestID, msgRetrievalFailed)
	}

	if err := retrieval.AssembleContext(ctx, sc, u.docs, u.searcher, u.logger); err != nil {
		switch {
		case errors.Is(err, retrieval.ErrScopedEmpty):
			return failure(requestID, msgScopedEmpty)
		case errors.Is(err, retrieval.ErrNoContext):
			return failure(requestID, msgNoContext)
		default:
			u.logger.Error("context_assembly_failed",
				slog.String("request_id", requestID),
				slog.String("error", err.Error()))
			return failure(requestID, msgRetrievalFailed)
		}
	}

	prompt, err := u.prompts.Build(PromptInput{Question: question, Contexts: sc.Enriched})
	if err != nil {
		u.logger.Error("prompt_build_failed",
			slog.String("request_id", requestID),
			slog.String("error", err.Error()))
		return failure(requestID, msgNoContext)
	}

	gen, err := u.chain.Generate(ctx, prompt)
	if err != nil {
		return failure(requestID, msgGenerationFailed+err.Error())
	}

	parsed := ParseResponse(gen.Content)
	citations := u.citations.Enrich(ctx, sc.Enriched)
	tokens, cost := u.usage.Account(sc.EmbeddingTokens, gen)

	u.usage.Record(ctx, domain.UsageEntry{
		ID:               uuid.New(),
		RequesterID:      input.RequesterID,
		Question:         question,
		ModelUsed:        gen.ModelUsed,
		PromptTokens:     tokens.PromptTokens,
		CompletionTokens: tokens.CompletionTokens,
		TotalTokens:      tokens.TotalTokens,
		EstimatedCost:    cost,
		CreatedAt:        time.Now().UTC(),
	})

	u.logger.Info("question_answered",
		slog.String("request_id", requestID),
		slog.String("model", gen.ModelUsed),
		slog.Int("attempts", len(gen.Attempts)),
		slog.Int("citation_count", len(citations)),
		slog.Bool("used_fallback_context", sc.UsedFallback))

	result := &RAGResult{
		Success:             true,
		Answer:              parsed.Answer,
		Summary:             parsed.Summary,
		Citations:           citations,
		AnswerReadingTime:   parsed.AnswerReadingTime,
		SummaryReadingTime:  parsed.SummaryReadingTime,
		ModelUsed:           gen.ModelUsed,
		TokenUsage:          tokens,
		EstimatedCost:       cost,
		UsedFallbackContext: sc.UsedFallback,
		RequestID:           requestID,
	}
	if u.includeDebug {
		result.DebugPrompts = &prompt
	}
	return result
}

func failure(requestID, message string) *RAGResult {
	return &RAGResult{Success: false, Message: message, RequestID: requestID}
}

func gateMessage(err error) string {
	switch {
	case errors.Is(err, ErrQuestionTooShort):
		return msgQuestionTooShort
	case errors.Is(err, ErrQuestionTooLong):
		return msgQuestionTooLong
	case errors.Is(err, ErrDisallowedQuestion):
		return msgDisallowed
	case errors.Is(err, ErrOffTopicQuestion):
		return msgOffTopic
	default:
		return msgDisallowed
	}
}

package usecase

import (
	"context"
	"log/slog"

	"qa-orchestrator/internal/domain"
)

// CostTable maps model ids to USD cost per million tokens. An immutable
// value injected at construction; unknown models bill at DefaultRate.
type CostTable struct {
	PerModel    map[string]float64
	DefaultRate float64
}

// DefaultCostTable returns the standard rates. Locally hosted models are
// modeled as zero-cost.
func DefaultCostTable() CostTable {
	return CostTable{
		PerModel: map[string]float64{
			"qwen2.5:7b":       0,
			"llama3.1:8b":      0,
			"mistral:7b":       0,
			"gpt-4o-mini":      0.60,
			"gpt-4o":           5.00,
			"gemini-2.0-flash": 0.40,
		},
		DefaultRate: 1.00,
	}
}

// WithOverrides returns a copy of the table with per-model rates
// replaced or added from overrides. A nil or empty map returns the
// receiver unchanged.
func (t CostTable) WithOverrides(overrides map[string]float64) CostTable {
	if len(overrides) == 0 {
		return t
	}
	merged := make(map[string]float64, len(t.PerModel)+len(overrides))
	for model, rate := range t.PerModel {
		merged[model] = rate
	}
	for model, rate := range overrides {
		merged[model] = rate
	}
	return CostTable{PerModel: merged, DefaultRate: t.DefaultRate}
}

// RateFor returns the cost per million tokens for a model.
func (t CostTable) RateFor(model string) float64 {
	if rate, ok := t.PerModel[model]; ok {
		return rate
	}
	return t.DefaultRate
}

// TokenUsage is the per-request token accounting.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// UsageAccountant computes token and cost accounting and forwards usage
// records to the sink.
type UsageAccountant struct {
	costs  CostTable
	sink   domain.UsageSink
	logger *slog.Logger
}

// NewUsageAccountant creates an accountant. The sink may be nil, in which
// case records are dropped.
func NewUsageAccountant(costs CostTable, sink domain.UsageSink, logger *slog.Logger) *UsageAccountant {
	return &UsageAccountant{costs: costs, sink: sink, logger: logger}
}

// Account computes usage for one answered question. Prompt tokens are the
// embedding tokens consumed across all variant searches. The provider's
// own completion count is preferred; when absent the count is estimated
// from the response length at four characters per token.
func (a *UsageAccountant) Account(embeddingTokens int, gen *GenerationResult) (TokenUsage, float64) {
	completionTokens := gen.CompletionTokens
	if completionTokens == 0 {
		completionTokens = len(gen.Content) / 4
	}

	usage := TokenUsage{
		PromptTokens:     embeddingTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      embeddingTokens + completionTokens,
	}
	cost := float64(usage.TotalTokens) / 1_000_000 * a.costs.RateFor(gen.ModelUsed)
	return usage, cost
}

// Record hands the entry to the sink. Best effort: a sink failure is
// logged and swallowed so observability never breaks the answer path.
func (a *UsageAccountant) Record(ctx context.Context, entry domain.UsageEntry) {
	if a.sink == nil {
		return
	}
	if err := a.sink.Record(ctx, entry); err != nil {
		a.logger.Warn("usage_record_failed",
			slog.String("requester_id", entry.RequesterID),
			slog.String("model", entry.ModelUsed),
			slog.String("error", err.Error()))
	}
}

package repository

import (
	"context"
	"fmt"

	"qa-orchestrator/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type usageRepository struct {
	pool *pgxpool.Pool
}

// NewUsageRepository creates the usage log sink. Callers treat recording
// as best effort; this repository just reports failures.
func NewUsageRepository(pool *pgxpool.Pool) domain.UsageSink {
	return &usageRepository{pool: pool}
}

func (r *usageRepository) Record(ctx context.Context, entry domain.UsageEntry) error {
	query := `
		INSERT INTO usage_log (
			id, requester_id, question, model_used,
			prompt_tokens, completion_tokens, total_tokens,
			estimated_cost, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.RequesterID, entry.Question, entry.ModelUsed,
		entry.PromptTokens, entry.CompletionTokens, entry.TotalTokens,
		entry.EstimatedCost, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert usage entry: %w", err)
	}
	return nil
}

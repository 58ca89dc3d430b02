package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UsageEntry is the accounting record handed off after each answered
// question. Recording is best effort; a lost entry never fails the answer.
type UsageEntry struct {
	ID               uuid.UUID
	RequesterID      string
	Question         string
	ModelUsed        string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	EstimatedCost    float64
	CreatedAt        time.Time
}

// UsageSink persists usage entries.
type UsageSink interface {
	Record(ctx context.Context, entry UsageEntry) error
}

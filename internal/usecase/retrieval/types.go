package retrieval

import (
	"fmt"

	"qa-orchestrator/internal/domain"
)

// Scope narrows retrieval to caller-selected documents or categories.
// A requested scope is a hard exclusion: the recent-chunks fallback never
// runs for scoped requests.
type Scope struct {
	DocumentIDs []string
	Categories  []string
}

// Requested reports whether the caller restricted retrieval at all.
func (s Scope) Requested() bool {
	return len(s.DocumentIDs) > 0 || len(s.Categories) > 0
}

// Config holds the retrieval tuning knobs. Injected at construction, never
// read from package-level state.
type Config struct {
	// SimilarityThreshold is the minimum similarity a chunk needs to enter
	// the pool.
	SimilarityThreshold float64
	// PerVariantLimit caps the chunks fetched for each query variant.
	PerVariantLimit int
	// FallbackLimit is the size of the recent-chunks set used when an
	// unscoped request retrieves nothing.
	FallbackLimit int
	// DomainContext is the phrase appended by the domain-context query
	// variant, e.g. "the document library".
	DomainContext string
}

// DefaultConfig returns the standard retrieval settings.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: 0.30,
		PerVariantLimit:     12,
		FallbackLimit:       3,
		DomainContext:       "the document library",
	}
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be in [0, 1], got %f", c.SimilarityThreshold)
	}
	if c.PerVariantLimit <= 0 {
		return fmt.Errorf("per-variant limit must be positive, got %d", c.PerVariantLimit)
	}
	if c.FallbackLimit < 0 {
		return fmt.Errorf("fallback limit must not be negative, got %d", c.FallbackLimit)
	}
	return nil
}

// StageContext carries data between pipeline stages for one request.
type StageContext struct {
	// Input
	RequestID string
	Question  string
	Scope     Scope
	Config    Config

	// Stage 1 output
	Variants []string

	// Stage 2 outputs
	EmbeddingTokens int
	Pool            []domain.RetrievedChunk

	// Stage 4 outputs
	Enriched     []domain.EnrichedChunk
	UsedFallback bool
}

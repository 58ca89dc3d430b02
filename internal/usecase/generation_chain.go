package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"qa-orchestrator/internal/domain"
)

// GenerationConfig holds the ordered model list and generation settings.
// Priority is configuration, not inferred.
type GenerationConfig struct {
	// Models is the fallback chain, tried strictly in order.
	Models []string
	// Temperature is the fixed generation temperature for every attempt.
	Temperature float64
	// MaxTokens caps the completion length for every attempt.
	MaxTokens int
}

// Validate checks the configuration is usable.
func (c GenerationConfig) Validate() error {
	if len(c.Models) == 0 {
		return fmt.Errorf("at least one model is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2], got %f", c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	return nil
}

// ModelAttempt is one ordered entry in the fallback chain's attempt log.
type ModelAttempt struct {
	ModelID string
	Err     error
}

// Failed reports whether the attempt errored.
func (a ModelAttempt) Failed() bool { return a.Err != nil }

// GenerationResult is the outcome of a successful chain run, including
// the full attempt history for diagnostics.
type GenerationResult struct {
	ModelUsed        string
	Content          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Attempts         []ModelAttempt
}

// GenerationChain tries an ordered list of models against the completion
// service until one succeeds. Fallback is model diversity, not time-based
// retry: there is no delay or backoff between attempts, so latency stays
// bounded at one live call per model.
type GenerationChain struct {
	client domain.CompletionClient
	cfg    GenerationConfig
	logger *slog.Logger
}

// NewGenerationChain wires the chain from an injected configuration.
func NewGenerationChain(client domain.CompletionClient, cfg GenerationConfig, logger *slog.Logger) (*GenerationChain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation config: %w", err)
	}
	return &GenerationChain{client: client, cfg: cfg, logger: logger}, nil
}

// Generate runs the chain. Every failed model is recorded and the next one
// is tried; the first success stops the chain. When every model fails the
// returned error embeds the last attempt's error.
func (c *GenerationChain) Generate(ctx context.Context, prompt PromptPair) (*GenerationResult, error) {
	attempts := make([]ModelAttempt, 0, len(c.cfg.Models))

	for _, model := range c.cfg.Models {
		result, err := c.client.Complete(ctx, domain.CompletionRequest{
			Model:        model,
			SystemPrompt: prompt.System,
			UserPrompt:   prompt.User,
			Temperature:  c.cfg.Temperature,
			MaxTokens:    c.cfg.MaxTokens,
		})
		if err != nil {
			attempts = append(attempts, ModelAttempt{ModelID: model, Err: err})
			c.logger.Warn("model_attempt_failed",
				slog.String("model", model),
				slog.Int("attempt", len(attempts)),
				slog.String("error", err.Error()))
			continue
		}

		attempts = append(attempts, ModelAttempt{ModelID: model})
		c.logger.Info("generation_completed",
			slog.String("model", model),
			slog.Int("attempts", len(attempts)),
			slog.Int("completion_tokens", result.CompletionTokens))

		return &GenerationResult{
			ModelUsed:        model,
			Content:          result.Content,
			PromptTokens:     result.PromptTokens,
			CompletionTokens: result.CompletionTokens,
			TotalTokens:      result.TotalTokens,
			Attempts:         attempts,
		}, nil
	}

	last := attempts[len(attempts)-1]
	return nil, fmt.Errorf("all %d models failed, last error from %s: %w", len(attempts), last.ModelID, last.Err)
}

package domain

import "context"

// CompletionRequest is one generation call against a specific model.
type CompletionRequest struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
}

// CompletionResult carries the generated text and the provider's token
// accounting. Token counts may be zero when the provider omits them.
type CompletionResult struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// CompletionClient defines the capability to run one completion against a
// named model. The model id travels per call so a fallback chain can
// iterate models over a single client.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error)
}

package domain

import "context"

// Embedding is a query vector plus the token count the provider consumed
// to produce it.
type Embedding struct {
	Vector []float32
	Tokens int
}

// Embedder defines the capability to turn text into a query vector.
type Embedder interface {
	Embed(ctx context.Context, text string) (*Embedding, error)
	Version() string
}

package domain

import (
	"context"
	"time"
)

// FileSigner issues time-limited access URLs for privately stored files.
type FileSigner interface {
	SignURL(ctx context.Context, filePath string, ttl time.Duration) (string, error)
}

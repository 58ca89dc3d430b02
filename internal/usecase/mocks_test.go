package usecase_test

import (
	"context"
	"log/slog"
	"time"

	"qa-orchestrator/internal/domain"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type mockEmbedder struct {
	mock.Mock
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (*domain.Embedding, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Embedding), args.Error(1)
}

func (m *mockEmbedder) Version() string {
	return "mock"
}

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) SearchSimilar(ctx context.Context, queryVector []float32, threshold float64, limit int) ([]domain.RetrievedChunk, error) {
	args := m.Called(ctx, queryVector, threshold, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RetrievedChunk), args.Error(1)
}

func (m *mockSearcher) RecentChunks(ctx context.Context, limit int) ([]domain.RetrievedChunk, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RetrievedChunk), args.Error(1)
}

type mockDocumentStore struct {
	mock.Mock
}

func (m *mockDocumentStore) DocumentsByIDs(ctx context.Context, ids []string) ([]domain.DocumentMeta, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentMeta), args.Error(1)
}

func (m *mockDocumentStore) DocumentIDsByCategories(ctx context.Context, names []string) ([]string, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockCompletionClient struct {
	mock.Mock
}

func (m *mockCompletionClient) Complete(ctx context.Context, req domain.CompletionRequest) (*domain.CompletionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompletionResult), args.Error(1)
}

type mockFileSigner struct {
	mock.Mock
}

func (m *mockFileSigner) SignURL(ctx context.Context, filePath string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, filePath, ttl)
	return args.String(0), args.Error(1)
}

type mockUsageSink struct {
	mock.Mock
}

func (m *mockUsageSink) Record(ctx context.Context, entry domain.UsageEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

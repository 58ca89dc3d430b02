package retrieval_test

import (
	"context"

	"qa-orchestrator/internal/domain"

	"github.com/stretchr/testify/mock"
)

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

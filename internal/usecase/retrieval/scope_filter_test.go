package retrieval_test

import (
	"context"
	"errors"
	"testing"

	"qa-orchestrator/internal/domain"
	"qa-orchestrator/internal/usecase/retrieval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplyScope_NoScopeLeavesPoolUntouched(t *testing.T) {
	docs := new(mockDocumentStore)
	sc := &retrieval.StageContext{
		Config: retrieval.DefaultConfig(),
		Pool:   []domain.RetrievedChunk{chunk("a", 0.9), chunk("b", 0.8)},
	}

	err := retrieval.ApplyScope(context.Background(), sc, docs, discardLogger())
	require.NoError(t, err)
	assert.Len(t, sc.Pool, 2)
	docs.AssertNotCalled(t, "DocumentIDsByCategories", mock.Anything, mock.Anything)
}

func TestApplyScope_DocumentFilter(t *testing.T) {
	docs := new(mockDocumentStore)
	sc := &retrieval.StageContext{
		Config: retrieval.DefaultConfig(),
		Scope:  retrieval.Scope{DocumentIDs: []string{"doc-a"}},
		Pool:   []domain.RetrievedChunk{chunk("a", 0.9), chunk("b", 0.8)},
	}

	err := retrieval.ApplyScope(context.Background(), sc, docs, discardLogger())
	require.NoError(t, err)

	require.Len(t, sc.Pool, 1)
	assert.Equal(t, "doc-a", sc.Pool[0].DocumentID)
}

func TestApplyScope_CategoryFilterPreservesOrder(t *testing.T) {
	docs := new(mockDocumentStore)
	docs.On("DocumentIDsByCategories", mock.Anything, []string{"tutorials"}).
		Return([]string{"doc-a", "doc-c"}, nil)

	sc := &retrieval.StageContext{
		Config: retrieval.DefaultConfig(),
		Scope:  retrieval.Scope{Categories: []string{"tutorials"}},
		Pool:   []domain.RetrievedChunk{chunk("a", 0.9), chunk("b", 0.8), chunk("c", 0.7)},
	}

	err := retrieval.ApplyScope(context.Background(), sc, docs, discardLogger())
	require.NoError(t, err)

	require.Len(t, sc.Pool, 2)
	assert.Equal(t, "a", sc.Pool[0].ChunkID)
	assert.Equal(t, "c", sc.Pool[1].ChunkID)
}

func TestApplyScope_CategoryResolutionFailure(t *testing.T) {
	docs := new(mockDocumentStore)
	docs.On("DocumentIDsByCategories", mock.Anything, []string{"broken"}).
		Return(nil, errors.New("db down"))

	sc := &retrieval.StageContext{
		Config: retrieval.DefaultConfig(),
		Scope:  retrieval.Scope{Categories: []string{"broken"}},
		Pool:   []domain.RetrievedChunk{chunk("a", 0.9)},
	}

	err := retrieval.ApplyScope(context.Background(), sc, docs, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve categories")
}

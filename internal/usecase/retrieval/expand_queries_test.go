package retrieval_test

import (
	"testing"

	"qa-orchestrator/internal/usecase/retrieval"

	"github.com/stretchr/testify/assert"
)

func TestExpandQuestion_OriginalIsAlwaysFirst(t *testing.T) {
	variants := retrieval.ExpandQuestion("How does connection pooling work?", "the document library")

	assert.Equal(t, "How does connection pooling work?", variants[0])
	assert.Contains(t, variants, "How does connection pooling work? in the document library context")
}

func TestExpandQuestion_Deterministic(t *testing.T) {
	first := retrieval.ExpandQuestion("Explain vector indexes", "the document library")
	second := retrieval.ExpandQuestion("Explain vector indexes", "the document library")

	assert.Equal(t, first, second)
}

func TestExpandQuestion_IntroductoryTopicVariants(t *testing.T) {
	variants := retrieval.ExpandQuestion("Explain pgvector indexes", "the document library")

	assert.Contains(t, variants, "introduction to pgvector indexes")
	assert.Contains(t, variants, "pgvector indexes basics")
	assert.Contains(t, variants, "what is pgvector indexes")
	assert.Contains(t, variants, "pgvector indexes for beginners")
	assert.Contains(t, variants, "pgvector indexes overview")
}

func TestExpandQuestion_WhatIsSynonyms(t *testing.T) {
	variants := retrieval.ExpandQuestion("What is cosine similarity?", "the document library")

	assert.Contains(t, variants, "meaning of cosine similarity?")
	assert.Contains(t, variants, "introduction to cosine similarity?")
}

func TestExpandQuestion_HowToSynonyms(t *testing.T) {
	variants := retrieval.ExpandQuestion("How to tune an HNSW index?", "the document library")

	assert.Contains(t, variants, "practice of tune an hnsw index?")
	assert.Contains(t, variants, "method for tune an hnsw index?")
}

func TestExpandQuestion_WhySynonyms(t *testing.T) {
	variants := retrieval.ExpandQuestion("Why does recall drop?", "the document library")

	assert.Contains(t, variants, "reason for does recall drop?")
	assert.Contains(t, variants, "purpose of does recall drop?")
}

func TestExpandQuestion_PlainQuestionGetsNoTopicVariants(t *testing.T) {
	variants := retrieval.ExpandQuestion("compare HNSW and IVFFlat", "the document library")

	// original plus the domain-context variant only
	assert.Len(t, variants, 2)
}

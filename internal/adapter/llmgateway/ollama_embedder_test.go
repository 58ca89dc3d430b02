package llmgateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaEmbedder_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embed", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "embeddinggemma", req["model"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"embeddings":        [][]float32{{0.1, 0.2, 0.3}},
			"prompt_eval_count": 7,
		})
	}))
	defer server.Close()

	embedder := NewOllamaEmbedder(server.URL, "embeddinggemma", server.Client())

	embedding, err := embedder.Embed(context.Background(), "what is vector search")
	require.NoError(t, err)

	assert.Equal(t, []float32{0.1, 0.2, 0.3}, embedding.Vector)
	assert.Equal(t, 7, embedding.Tokens)
}

func TestOllamaEmbedder_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	embedder := NewOllamaEmbedder(server.URL, "embeddinggemma", server.Client())

	_, err := embedder.Embed(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned status")
}

func TestOllamaEmbedder_NoVectors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"embeddings": [][]float32{}})
	}))
	defer server.Close()

	embedder := NewOllamaEmbedder(server.URL, "embeddinggemma", server.Client())

	_, err := embedder.Embed(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no vectors")
}

func TestOllamaEmbedder_Version(t *testing.T) {
	embedder := NewOllamaEmbedder("http://localhost:11434", "embeddinggemma", nil)
	assert.Equal(t, "embeddinggemma", embedder.Version())
}

package repository

import (
	"context"
	"fmt"

	"qa-orchestrator/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

type chunkRepository struct {
	pool *pgxpool.Pool
}

// NewChunkRepository creates the pgvector-backed similarity searcher.
func NewChunkRepository(pool *pgxpool.Pool) domain.SimilaritySearcher {
	return &chunkRepository{pool: pool}
}

func (r *chunkRepository) SearchSimilar(ctx context.Context, queryVector []float32, threshold float64, limit int) ([]domain.RetrievedChunk, error) {
	query := `
		SELECT c.id, c.document_id, d.title, d.provider_name, c.content,
		       1 - (c.embedding <=> $1) AS similarity,
		       c.page_number, c.position, c.metadata
		FROM corpus_chunks c
		JOIN corpus_documents d ON d.id = c.document_id
		WHERE 1 - (c.embedding <=> $1) >= $2
		ORDER BY c.embedding <=> $1
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, pgvector.NewVector(queryVector), threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.RetrievedChunk
	for rows.Next() {
		var c domain.RetrievedChunk
		if err := rows.Scan(&c.ChunkID, &c.DocumentID, &c.DocumentTitle, &c.ProviderName,
			&c.Content, &c.Similarity, &c.PageNumber, &c.Position, &c.Metadata); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return chunks, nil
}

func (r *chunkRepository) RecentChunks(ctx context.Context, limit int) ([]domain.RetrievedChunk, error) {
	query := `
		SELECT c.id, c.document_id, d.title, d.provider_name, c.content,
		       c.page_number, c.position, c.metadata
		FROM corpus_chunks c
		JOIN corpus_documents d ON d.id = c.document_id
		ORDER BY c.created_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.RetrievedChunk
	for rows.Next() {
		var c domain.RetrievedChunk
		if err := rows.Scan(&c.ChunkID, &c.DocumentID, &c.DocumentTitle, &c.ProviderName,
			&c.Content, &c.PageNumber, &c.Position, &c.Metadata); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return chunks, nil
}

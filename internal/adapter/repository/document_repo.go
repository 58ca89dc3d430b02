package repository

import (
	"context"
	"fmt"

	"qa-orchestrator/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type documentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates the document/category metadata store.
func NewDocumentRepository(pool *pgxpool.Pool) domain.DocumentStore {
	return &documentRepository{pool: pool}
}

func (r *documentRepository) DocumentsByIDs(ctx context.Context, ids []string) ([]domain.DocumentMeta, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, title, COALESCE(file_path, ''), COALESCE(file_type, '')
		FROM corpus_documents
		WHERE id = ANY($1)
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var metas []domain.DocumentMeta
	for rows.Next() {
		var m domain.DocumentMeta
		if err := rows.Scan(&m.ID, &m.Title, &m.FilePath, &m.FileType); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		metas = append(metas, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return metas, nil
}

func (r *documentRepository) DocumentIDsByCategories(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	query := `
		SELECT DISTINCT dc.document_id
		FROM corpus_document_categories dc
		JOIN corpus_categories cat ON cat.id = dc.category_id
		WHERE cat.name = ANY($1)
	`
	rows, err := r.pool.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve categories: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan document id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return ids, nil
}

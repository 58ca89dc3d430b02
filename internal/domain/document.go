package domain

import "context"

// DocumentMeta carries the document-level metadata needed to enrich chunks
// and build citations.
type DocumentMeta struct {
	ID       string
	Title    string
	FilePath string
	FileType string
}

// DocumentStore resolves document metadata and category membership.
type DocumentStore interface {
	// DocumentsByIDs returns metadata for the given document ids.
	// Unknown ids are silently absent from the result.
	DocumentsByIDs(ctx context.Context, ids []string) ([]DocumentMeta, error)

	// DocumentIDsByCategories resolves category names to the ids of their
	// member documents.
	DocumentIDsByCategories(ctx context.Context, names []string) ([]string, error)
}

package domain

// RetrievedChunk is one passage returned by similarity search. ChunkID is
// the identity key for deduplication across query variants.
type RetrievedChunk struct {
	ChunkID       string
	DocumentID    string
	DocumentTitle string
	ProviderName  string
	Content       string
	Similarity    float64
	PageNumber    *int
	Position      *int
	Metadata      map[string]any
}

// EnrichedChunk is a RetrievedChunk joined with document-level file
// metadata. Built fresh per request, never cached across requests.
type EnrichedChunk struct {
	RetrievedChunk
	FilePath string
	FileType string
}

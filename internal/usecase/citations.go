package usecase

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"qa-orchestrator/internal/domain"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	quoteLimit   = 200
	signedURLTTL = time.Hour

	// Cached URLs expire before the signature does so a hit is always
	// still valid when rendered.
	urlCacheTTL  = 50 * time.Minute
	urlCacheSize = 256
)

// Citation is a user-facing record pointing an answer back at its source
// passage. Citation order equals prompt source order, so citation index N
// corresponds to [Source N] in the answer text (1-based).
type Citation struct {
	DocumentID         string  `json:"document_id"`
	DocumentTitle      string  `json:"document_title"`
	ProviderName       string  `json:"provider_name"`
	PageNumber         *int    `json:"page_number,omitempty"`
	ChunkID            string  `json:"chunk_id"`
	Quote              string  `json:"quote"`
	FullContent        string  `json:"full_content"`
	Similarity         float64 `json:"similarity"`
	PositionInDocument int     `json:"position_in_document"`
	Chapter            string  `json:"chapter,omitempty"`
	MediaReference     string  `json:"media_reference,omitempty"`
	StartTimestamp     string  `json:"start_timestamp,omitempty"`
	EndTimestamp       string  `json:"end_timestamp,omitempty"`
	FileURL            string  `json:"file_url,omitempty"`
	FileType           string  `json:"file_type,omitempty"`
	FilePath           string  `json:"file_path,omitempty"`
}

// CitationEnricher maps the chunks used to build the prompt into citation
// records, requesting short-lived access URLs for chunks backed by a
// stored file.
type CitationEnricher struct {
	signer   domain.FileSigner
	urlCache *expirable.LRU[string, string]
	logger   *slog.Logger
}

// NewCitationEnricher creates an enricher. The signer may be nil, in which
// case citations simply carry no file URL.
func NewCitationEnricher(signer domain.FileSigner, logger *slog.Logger) *CitationEnricher {
	return &CitationEnricher{
		signer:   signer,
		urlCache: expirable.NewLRU[string, string](urlCacheSize, nil, urlCacheTTL),
		logger:   logger,
	}
}

// Enrich builds one citation per chunk, in the order the chunks entered
// the prompt. A signing failure leaves the URL absent and is never fatal.
func (e *CitationEnricher) Enrich(ctx context.Context, chunks []domain.EnrichedChunk) []Citation {
	citations := make([]Citation, 0, len(chunks))
	for i, chunk := range chunks {
		citation := Citation{
			DocumentID:         chunk.DocumentID,
			DocumentTitle:      chunk.DocumentTitle,
			ProviderName:       chunk.ProviderName,
			PageNumber:         chunk.PageNumber,
			ChunkID:            chunk.ChunkID,
			Quote:              truncateQuote(chunk.Content),
			FullContent:        chunk.Content,
			Similarity:         chunk.Similarity,
			PositionInDocument: positionInDocument(chunk, i),
			Chapter:            metaString(chunk.Metadata, "chapter"),
			MediaReference:     metaString(chunk.Metadata, "media_reference"),
			StartTimestamp:     metaString(chunk.Metadata, "start_timestamp"),
			EndTimestamp:       metaString(chunk.Metadata, "end_timestamp"),
			FileType:           NormalizeFileType(chunk.FileType, chunk.FilePath),
			FilePath:           chunk.FilePath,
		}

		if e.signer != nil && chunk.FilePath != "" {
			url, err := e.signURL(ctx, chunk.FilePath)
			if err != nil {
				e.logger.Warn("citation_url_signing_failed",
					slog.String("chunk_id", chunk.ChunkID),
					slog.String("file_path", chunk.FilePath),
					slog.String("error", err.Error()))
			} else {
				citation.FileURL = url
			}
		}

		citations = append(citations, citation)
	}
	return citations
}

func (e *CitationEnricher) signURL(ctx context.Context, filePath string) (string, error) {
	if url, ok := e.urlCache.Get(filePath); ok {
		return url, nil
	}
	url, err := e.signer.SignURL(ctx, filePath, signedURLTTL)
	if err != nil {
		return "", err
	}
	e.urlCache.Add(filePath, url)
	return url, nil
}

func truncateQuote(content string) string {
	runes := []rune(content)
	if len(runes) <= quoteLimit {
		return content
	}
	return string(runes[:quoteLimit]) + "..."
}

func positionInDocument(chunk domain.EnrichedChunk, promptIndex int) int {
	if chunk.Position != nil {
		return *chunk.Position
	}
	return promptIndex
}

// NormalizeFileType canonicalizes the declared file type, inferring "pdf"
// from either the declared type or the file-path extension.
func NormalizeFileType(declared, filePath string) string {
	lowered := strings.ToLower(strings.TrimSpace(declared))
	if strings.Contains(lowered, "pdf") {
		return "pdf"
	}
	if strings.EqualFold(filepath.Ext(filePath), ".pdf") {
		return "pdf"
	}
	return lowered
}

func metaString(metadata map[string]any, key string) string {
	if metadata == nil {
		return ""
	}
	if value, ok := metadata[key].(string); ok {
		return value
	}
	return ""
}

package qa_http

import (
	"context"
	"net/http"

	"qa-orchestrator/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Pinger reports backing-store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler exposes the question-answering pipeline over HTTP.
type Handler struct {
	askUsecase      usecase.AskQuestionUsecase
	retrieveUsecase usecase.RetrieveContextUsecase
	pinger          Pinger
}

// NewHandler wires the HTTP surface.
func NewHandler(
	askUsecase usecase.AskQuestionUsecase,
	retrieveUsecase usecase.RetrieveContextUsecase,
	pinger Pinger,
) *Handler {
	return &Handler{
		askUsecase:      askUsecase,
		retrieveUsecase: retrieveUsecase,
		pinger:          pinger,
	}
}

// RegisterRoutes registers all endpoints on the echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/v1/questions", h.AskQuestion)
	e.POST("/v1/retrieve", h.RetrieveContext)
	e.GET("/v1/health", h.Health)
}

type askRequest struct {
	Question            string   `json:"question"`
	RequesterID         string   `json:"requester_id"`
	SelectedDocumentIDs []string `json:"selected_document_ids"`
	SelectedCategories  []string `json:"selected_categories"`
}

// AskQuestion answers one question. Pipeline failures are part of the
// result payload, not HTTP errors, so callers render all outcomes
// uniformly.
// (POST /v1/questions)
func (h *Handler) AskQuestion(ctx echo.Context) error {
	var req askRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	result := h.askUsecase.Execute(ctx.Request().Context(), usecase.AskQuestionInput{
		Question:            req.Question,
		RequesterID:         req.RequesterID,
		SelectedDocumentIDs: req.SelectedDocumentIDs,
		SelectedCategories:  req.SelectedCategories,
	})
	return ctx.JSON(http.StatusOK, result)
}

type retrieveRequest struct {
	Question            string   `json:"question"`
	SelectedDocumentIDs []string `json:"selected_document_ids"`
	SelectedCategories  []string `json:"selected_categories"`
}

type retrievedChunkPayload struct {
	ChunkID       string         `json:"chunk_id"`
	DocumentID    string         `json:"document_id"`
	DocumentTitle string         `json:"document_title"`
	ProviderName  string         `json:"provider_name"`
	Content       string         `json:"content"`
	Similarity    float64        `json:"similarity"`
	PageNumber    *int           `json:"page_number,omitempty"`
	Position      *int           `json:"position,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	FilePath      string         `json:"file_path,omitempty"`
	FileType      string         `json:"file_type,omitempty"`
}

type retrieveResponse struct {
	RequestID       string                  `json:"request_id"`
	Chunks          []retrievedChunkPayload `json:"chunks"`
	EmbeddingTokens int                     `json:"embedding_tokens"`
	UsedFallback    bool                    `json:"used_fallback"`
}

// RetrieveContext returns the ranked, scope-filtered passage set without
// generation.
// (POST /v1/retrieve)
func (h *Handler) RetrieveContext(ctx echo.Context) error {
	var req retrieveRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	output, err := h.retrieveUsecase.Execute(ctx.Request().Context(), usecase.RetrieveContextInput{
		Question:            req.Question,
		SelectedDocumentIDs: req.SelectedDocumentIDs,
		SelectedCategories:  req.SelectedCategories,
	})
	if err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	chunks := make([]retrievedChunkPayload, 0, len(output.Chunks))
	for _, c := range output.Chunks {
		chunks = append(chunks, retrievedChunkPayload{
			ChunkID:       c.ChunkID,
			DocumentID:    c.DocumentID,
			DocumentTitle: c.DocumentTitle,
			ProviderName:  c.ProviderName,
			Content:       c.Content,
			Similarity:    c.Similarity,
			PageNumber:    c.PageNumber,
			Position:      c.Position,
			Metadata:      c.Metadata,
			FilePath:      c.FilePath,
			FileType:      c.FileType,
		})
	}

	return ctx.JSON(http.StatusOK, retrieveResponse{
		RequestID:       output.RequestID,
		Chunks:          chunks,
		EmbeddingTokens: output.EmbeddingTokens,
		UsedFallback:    output.UsedFallback,
	})
}

// Health reports service and backing-store health.
// (GET /v1/health)
func (h *Handler) Health(ctx echo.Context) error {
	if h.pinger != nil {
		if err := h.pinger.Ping(ctx.Request().Context()); err != nil {
			return ctx.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
		}
	}
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

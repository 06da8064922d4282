package handler

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventlex/internal/domain"
	"eventlex/internal/llm"
	"eventlex/internal/service"
)

// ExtractionHandler runs the document-to-dictionary pipeline over HTTP.
type ExtractionHandler struct {
	extraction service.ExtractionService
	projects   service.ProjectService
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(extraction service.ExtractionService, projects service.ProjectService) *ExtractionHandler {
	return &ExtractionHandler{extraction: extraction, projects: projects}
}

type extractRequest struct {
	DocumentText string                  `json:"document_text" binding:"required"`
	Context      *domain.DocumentContext `json:"context"`
	ProjectID    *uuid.UUID              `json:"project_id"`
	Label        string                  `json:"label"`
}

type extractResponse struct {
	Result   *domain.ProcessingResult `json:"result"`
	Progress []llm.ProgressUpdate     `json:"progress"`
	Snapshot *domain.Snapshot         `json:"snapshot,omitempty"`
}

// Extract handles POST /extractions. It runs the pipeline synchronously and
// returns the processing result along with the progress trail of the
// completion call. If project_id is set, the result is also stored as a
// snapshot under that project.
func (h *ExtractionHandler) Extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "document_text is required")
		return
	}

	var mu sync.Mutex
	progress := []llm.ProgressUpdate{}
	onProgress := func(u llm.ProgressUpdate) {
		mu.Lock()
		progress = append(progress, u)
		mu.Unlock()
	}

	result := h.extraction.ExtractDictionary(c.Request.Context(), req.DocumentText, req.Context, onProgress)

	resp := extractResponse{Result: result, Progress: progress}

	if req.ProjectID != nil {
		snap, err := h.projects.SaveSnapshot(c.Request.Context(), *req.ProjectID, req.Label, result)
		if err != nil {
			HandleError(c, err)
			return
		}
		resp.Snapshot = snap
	}

	RespondOK(c, resp)
}

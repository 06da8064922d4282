package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventlex/internal/domain"
	"eventlex/internal/export"
	"eventlex/internal/service"
)

// ExportHandler streams stored snapshot dictionaries as downloadable files.
type ExportHandler struct {
	projects service.ProjectService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(projects service.ProjectService) *ExportHandler {
	return &ExportHandler{projects: projects}
}

// Export handles GET /snapshots/:id/export?format=csv|markdown|xlsx.
// The file is rendered fully in memory before any header is written, so a
// generation failure still produces a proper error status instead of a
// truncated 200.
func (h *ExportHandler) Export(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "csv")

	snap, err := h.projects.GetSnapshot(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	var dict domain.Dictionary
	if err := json.Unmarshal(snap.Dictionary, &dict); err != nil {
		HandleError(c, fmt.Errorf("unmarshaling snapshot dictionary: %w", err))
		return
	}

	baseName := snap.Label
	if baseName == "" {
		if p, err := h.projects.GetProject(c.Request.Context(), snap.ProjectID); err == nil {
			baseName = p.Name
		} else {
			baseName = "dictionary"
		}
	}

	body, ext, err := renderExport(format, &dict)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.BuildFilename(baseName, ext)))
	c.Data(http.StatusOK, export.ContentType(format), body)
}

// renderExport produces the complete export payload and its file extension.
func renderExport(format string, dict *domain.Dictionary) ([]byte, string, error) {
	var buf bytes.Buffer

	switch format {
	case "csv":
		buf.Write(export.BOM)
		w := export.NewCSVWriter(&buf)
		if err := w.WriteHeader(); err != nil {
			return nil, "", err
		}
		if err := w.WriteDictionary(dict); err != nil {
			return nil, "", err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "csv", nil

	case "markdown", "md":
		if err := export.WriteMarkdown(&buf, dict); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "md", nil

	case "xlsx", "excel":
		if err := export.WriteExcel(&buf, dict); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "xlsx", nil

	default:
		return nil, "", domain.ErrUnsupportedFormat
	}
}

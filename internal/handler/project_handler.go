package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventlex/internal/service"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ProjectHandler exposes project and snapshot CRUD over HTTP.
type ProjectHandler struct {
	projects service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type projectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type projectUpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create handles POST /projects.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}

	p, err := h.projects.CreateProject(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, p)
}

// Get handles GET /projects/:id.
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	p, err := h.projects.GetProject(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}

// List handles GET /projects.
func (h *ProjectHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	projects, total, err := h.projects.ListProjects(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, projects, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /projects/:id.
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req projectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	p, err := h.projects.UpdateProject(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}

// Delete handles DELETE /projects/:id.
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.projects.DeleteProject(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSnapshots handles GET /projects/:id/snapshots.
func (h *ProjectHandler) ListSnapshots(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	snaps, total, err := h.projects.ListSnapshots(c.Request.Context(), projectID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, snaps, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetSnapshot handles GET /snapshots/:id.
func (h *ProjectHandler) GetSnapshot(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	snap, err := h.projects.GetSnapshot(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, snap)
}

// DeleteSnapshot handles DELETE /snapshots/:id.
func (h *ProjectHandler) DeleteSnapshot(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.projects.DeleteSnapshot(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+param+" format")
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	return offset, limit
}

package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportRouter(projects *fakeProjects) *gin.Engine {
	r := gin.New()
	h := NewExportHandler(projects)
	r.GET("/snapshots/:id/export", h.Export)
	return r
}

func seededSnapshot(t *testing.T, projects *fakeProjects, label string) uuid.UUID {
	t.Helper()
	p, err := projects.CreateProject(context.Background(), "growth", "")
	require.NoError(t, err)
	snap, err := projects.SaveSnapshot(context.Background(), p.ID, label, sampleResult())
	require.NoError(t, err)
	return snap.ID
}

func TestExport_CSVDefault(t *testing.T) {
	projects := newFakeProjects()
	id := seededSnapshot(t, projects, "v1")

	w := doJSON(t, exportRouter(projects), http.MethodGet, "/snapshots/"+id.String()+"/export", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="v1_`)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	body := w.Body.Bytes()
	require.Greater(t, len(body), 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, body[:3], "CSV export leads with a UTF-8 BOM")
	assert.Contains(t, string(body), "signup_started")
}

func TestExport_Markdown(t *testing.T) {
	projects := newFakeProjects()
	id := seededSnapshot(t, projects, "v1")

	w := doJSON(t, exportRouter(projects), http.MethodGet, "/snapshots/"+id.String()+"/export?format=markdown", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "text/markdown", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "# Analytics Event Dictionary")
}

func TestExport_Excel(t *testing.T) {
	projects := newFakeProjects()
	id := seededSnapshot(t, projects, "v1")

	w := doJSON(t, exportRouter(projects), http.MethodGet, "/snapshots/"+id.String()+"/export?format=xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	body := w.Body.Bytes()
	require.Greater(t, len(body), 2)
	assert.Equal(t, []byte{'P', 'K'}, body[:2])
}

func TestExport_UnlabeledSnapshotUsesProjectName(t *testing.T) {
	projects := newFakeProjects()
	id := seededSnapshot(t, projects, "")

	w := doJSON(t, exportRouter(projects), http.MethodGet, "/snapshots/"+id.String()+"/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="growth_`)
}

func TestExport_UnsupportedFormat(t *testing.T) {
	projects := newFakeProjects()
	id := seededSnapshot(t, projects, "v1")

	w := doJSON(t, exportRouter(projects), http.MethodGet, "/snapshots/"+id.String()+"/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_FORMAT")
}

func TestExport_CorruptSnapshotErrorsCleanly(t *testing.T) {
	projects := newFakeProjects()
	id := seededSnapshot(t, projects, "v1")
	projects.snapshots[id].Dictionary = []byte(`{not json`)

	w := doJSON(t, exportRouter(projects), http.MethodGet, "/snapshots/"+id.String()+"/export", nil)

	// A failed export must surface as an error status, never a 200 with a
	// partial attachment.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestExport_UnknownSnapshot(t *testing.T) {
	w := doJSON(t, exportRouter(newFakeProjects()), http.MethodGet, "/snapshots/"+uuid.NewString()+"/export", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "SNAPSHOT_NOT_FOUND")
}

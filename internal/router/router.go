package router

import (
	"github.com/gin-gonic/gin"

	"eventlex/internal/config"
	"eventlex/internal/handler"
	"eventlex/internal/middleware"
)

// Handlers bundles the HTTP handlers the router wires up.
type Handlers struct {
	Health     *handler.HealthHandler
	Extraction *handler.ExtractionHandler
	Project    *handler.ProjectHandler
	Export     *handler.ExportHandler
}

// Setup builds the Gin engine with middleware and all routes.
func Setup(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWT))
	{
		api.POST("/extractions", h.Extraction.Extract)

		api.POST("/projects", h.Project.Create)
		api.GET("/projects", h.Project.List)
		api.GET("/projects/:id", h.Project.Get)
		api.PUT("/projects/:id", h.Project.Update)
		api.DELETE("/projects/:id", h.Project.Delete)
		api.GET("/projects/:id/snapshots", h.Project.ListSnapshots)

		api.GET("/snapshots/:id", h.Project.GetSnapshot)
		api.DELETE("/snapshots/:id", h.Project.DeleteSnapshot)
		api.GET("/snapshots/:id/export", h.Export.Export)
	}

	return r
}

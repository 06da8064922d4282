package main

import (
	"fmt"
	"log"

	"eventlex/internal/config"
	"eventlex/internal/handler"
	"eventlex/internal/llm"
	"eventlex/internal/repository/postgres"
	"eventlex/internal/router"
	"eventlex/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	projectRepo := postgres.NewProjectRepo(db)
	snapshotRepo := postgres.NewSnapshotRepo(db)

	// Initialize completion client
	llmCfg, err := config.ResolveLLM(cfg.LLM, nil)
	if err != nil {
		return fmt.Errorf("invalid llm config: %w", err)
	}
	client := llm.NewClient(llmCfg)

	// Initialize services
	extractionSvc := service.NewExtractionService(client)
	projectSvc := service.NewProjectService(projectRepo, snapshotRepo)

	// Initialize handlers
	handlers := router.Handlers{
		Health:     handler.NewHealthHandler(db),
		Extraction: handler.NewExtractionHandler(extractionSvc, projectSvc),
		Project:    handler.NewProjectHandler(projectSvc),
		Export:     handler.NewExportHandler(projectSvc),
	}

	r := router.Setup(cfg, handlers)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"eventlex/internal/domain"
	"eventlex/internal/port"
)

// ProjectService manages extraction projects and their stored snapshots.
type ProjectService interface {
	CreateProject(ctx context.Context, name, description string) (*domain.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	ListProjects(ctx context.Context, offset, limit int) ([]domain.Project, int, error)
	UpdateProject(ctx context.Context, id uuid.UUID, name, description string) (*domain.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error

	SaveSnapshot(ctx context.Context, projectID uuid.UUID, label string, result *domain.ProcessingResult) (*domain.Snapshot, error)
	GetSnapshot(ctx context.Context, id uuid.UUID) (*domain.Snapshot, error)
	ListSnapshots(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]domain.Snapshot, int, error)
	DeleteSnapshot(ctx context.Context, id uuid.UUID) error
}

type projectService struct {
	projectRepo  port.ProjectRepository
	snapshotRepo port.SnapshotRepository
}

// NewProjectService creates a ProjectService over the given repositories.
func NewProjectService(projectRepo port.ProjectRepository, snapshotRepo port.SnapshotRepository) ProjectService {
	return &projectService{projectRepo: projectRepo, snapshotRepo: snapshotRepo}
}

func (s *projectService) CreateProject(ctx context.Context, name, description string) (*domain.Project, error) {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projectRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return p, nil
}

func (s *projectService) GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

func (s *projectService) ListProjects(ctx context.Context, offset, limit int) ([]domain.Project, int, error) {
	return s.projectRepo.List(ctx, offset, limit)
}

func (s *projectService) UpdateProject(ctx context.Context, id uuid.UUID, name, description string) (*domain.Project, error) {
	p, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		p.Name = name
	}
	if description != "" {
		p.Description = description
	}
	p.UpdatedAt = time.Now().UTC()
	if err := s.projectRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return p, nil
}

func (s *projectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return s.projectRepo.Delete(ctx, id)
}

// SaveSnapshot stores an extraction result under a project. The dictionary
// and the full result are kept as separate JSON payloads so exports can read
// the dictionary without reparsing the whole result.
func (s *projectService) SaveSnapshot(ctx context.Context, projectID uuid.UUID, label string, result *domain.ProcessingResult) (*domain.Snapshot, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	dictJSON, err := json.Marshal(result.Dictionary)
	if err != nil {
		return nil, fmt.Errorf("marshaling dictionary: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}

	snap := &domain.Snapshot{
		ID:         uuid.New(),
		ProjectID:  projectID,
		Label:      label,
		Dictionary: dictJSON,
		Result:     resultJSON,
		EventCount: len(result.Dictionary.Events),
		Confidence: result.Confidence,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.snapshotRepo.Create(ctx, snap); err != nil {
		return nil, fmt.Errorf("creating snapshot: %w", err)
	}
	return snap, nil
}

func (s *projectService) GetSnapshot(ctx context.Context, id uuid.UUID) (*domain.Snapshot, error) {
	return s.snapshotRepo.GetByID(ctx, id)
}

func (s *projectService) ListSnapshots(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]domain.Snapshot, int, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, 0, err
	}
	return s.snapshotRepo.ListByProject(ctx, projectID, offset, limit)
}

func (s *projectService) DeleteSnapshot(ctx context.Context, id uuid.UUID) error {
	return s.snapshotRepo.Delete(ctx, id)
}

package port

import (
	"context"

	"github.com/google/uuid"

	"eventlex/internal/domain"
)

// ProjectRepository persists extraction projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	List(ctx context.Context, offset, limit int) ([]domain.Project, int, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SnapshotRepository persists extraction result snapshots per project.
type SnapshotRepository interface {
	Create(ctx context.Context, s *domain.Snapshot) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Snapshot, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]domain.Snapshot, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"eventlex/internal/domain"
	"eventlex/internal/port"
)

type snapshotRepo struct {
	db *sqlx.DB
}

// NewSnapshotRepo creates a new PostgreSQL-backed SnapshotRepository.
func NewSnapshotRepo(db *sqlx.DB) port.SnapshotRepository {
	return &snapshotRepo{db: db}
}

func (r *snapshotRepo) Create(ctx context.Context, s *domain.Snapshot) error {
	query := `INSERT INTO snapshots (id, project_id, label, dictionary, result, event_count, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.ProjectID, s.Label, s.Dictionary, s.Result, s.EventCount, s.Confidence, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("snapshotRepo.Create: %w", err)
	}
	return nil
}

func (r *snapshotRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Snapshot, error) {
	var s domain.Snapshot
	err := r.db.GetContext(ctx, &s, "SELECT * FROM snapshots WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("snapshotRepo.GetByID: %w", err)
	}
	return &s, nil
}

func (r *snapshotRepo) ListByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]domain.Snapshot, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM snapshots WHERE project_id = $1", projectID)
	if err != nil {
		return nil, 0, fmt.Errorf("snapshotRepo.ListByProject count: %w", err)
	}

	var snaps []domain.Snapshot
	err = r.db.SelectContext(ctx, &snaps,
		"SELECT * FROM snapshots WHERE project_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		projectID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("snapshotRepo.ListByProject: %w", err)
	}
	return snaps, total, nil
}

func (r *snapshotRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("snapshotRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSnapshotNotFound
	}
	return nil
}

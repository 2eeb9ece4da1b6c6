package tasks

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunTaskRepository persists task records through bun.
type BunTaskRepository struct {
	db   *bun.DB
	repo repository.Repository[*Record]
}

func NewBunTaskRepository(db *bun.DB) *BunTaskRepository {
	return &BunTaskRepository{db: db, repo: NewTaskRepository(db)}
}

func (r *BunTaskRepository) Create(ctx context.Context, record *Record) (*Record, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("task repository error: %w", err)
	}
	return created, nil
}

func (r *BunTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, &NotFoundError{Key: id.String()}
		}
		return nil, fmt.Errorf("task repository error: %w", err)
	}
	return result, nil
}

func (r *BunTaskRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*Record)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("task repository error: %w", err)
	}
	return nil
}

func (r *BunTaskRepository) ListBySite(ctx context.Context, siteID uuid.UUID) ([]*Record, error) {
	var records []*Record
	err := r.db.NewSelect().
		Model(&records).
		Where("site_id = ?", siteID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("task repository error: %w", err)
	}
	return records, nil
}

func (r *BunTaskRepository) ListPlaceholders(ctx context.Context) ([]*Record, error) {
	var records []*Record
	err := r.db.NewSelect().
		Model(&records).
		Where("lane = ?", LanePlanned).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("task repository error: %w", err)
	}
	return records, nil
}

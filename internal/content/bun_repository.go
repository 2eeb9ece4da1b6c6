package content

import (
	"context"
	"fmt"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunEntryRepository persists content entries through bun.
type BunEntryRepository struct {
	db   *bun.DB
	repo repository.Repository[*Entry]
}

func NewBunEntryRepository(db *bun.DB) *BunEntryRepository {
	return &BunEntryRepository{db: db, repo: NewEntryRepository(db)}
}

func (r *BunEntryRepository) Create(ctx context.Context, record *Entry) (*Entry, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("content repository error: %w", err)
	}
	return created, nil
}

func (r *BunEntryRepository) ListBySite(ctx context.Context, siteID uuid.UUID) ([]*Entry, error) {
	var records []*Entry
	err := r.db.NewSelect().
		Model(&records).
		Where("site_id = ?", siteID).
		Where("deleted_at IS NULL").
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("content repository error: %w", err)
	}
	return records, nil
}

func (r *BunEntryRepository) CountBySource(ctx context.Context, siteID uuid.UUID, source string) (int, error) {
	count, err := r.db.NewSelect().
		Model((*Entry)(nil)).
		Where("site_id = ?", siteID).
		Where("source = ?", source).
		Where("deleted_at IS NULL").
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("content repository error: %w", err)
	}
	return count, nil
}

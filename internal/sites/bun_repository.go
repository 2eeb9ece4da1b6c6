package sites

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunSiteRepository persists sites through bun, optionally wrapped with the
// repository cache. The sweep reads every in-scope site each pass, so caching
// the hot read path is worthwhile.
type BunSiteRepository struct {
	db   *bun.DB
	repo repository.Repository[*Site]
}

func NewBunSiteRepository(db *bun.DB) *BunSiteRepository {
	return NewBunSiteRepositoryWithCache(db, nil, nil)
}

func NewBunSiteRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunSiteRepository {
	base := NewSiteRepository(db)
	if cacheService != nil && keySerializer != nil {
		base = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunSiteRepository{db: db, repo: base}
}

func (r *BunSiteRepository) Create(ctx context.Context, record *Site) (*Site, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("site repository error: %w", err)
	}
	return created, nil
}

func (r *BunSiteRepository) GetByID(ctx context.Context, id uuid.UUID) (*Site, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return result, nil
}

func (r *BunSiteRepository) Update(ctx context.Context, record *Site) (*Site, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, record.ID.String())
	}
	return updated, nil
}

func (r *BunSiteRepository) List(ctx context.Context) ([]*Site, error) {
	records, _, err := r.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("site repository error: %w", err)
	}
	return records, nil
}

func (r *BunSiteRepository) ListAutomatable(ctx context.Context) ([]*Site, error) {
	var records []*Site
	err := r.db.NewSelect().
		Model(&records).
		Where("automation_paused = ?", false).
		Where("status NOT IN (?)", bun.In([]string{string(StatusActive), string(StatusPaused), string(StatusArchived)})).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("site repository error: %w", err)
	}
	return records, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "site", Key: key}
	}
	return fmt.Errorf("site repository error: %w", err)
}

package domains

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunDomainRepository persists domains through bun.
type BunDomainRepository struct {
	db   *bun.DB
	repo repository.Repository[*Domain]
}

func NewBunDomainRepository(db *bun.DB) *BunDomainRepository {
	return &BunDomainRepository{db: db, repo: NewDomainRepository(db)}
}

func (r *BunDomainRepository) Create(ctx context.Context, record *Domain) (*Domain, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("domain repository error: %w", err)
	}
	return created, nil
}

func (r *BunDomainRepository) GetByID(ctx context.Context, id uuid.UUID) (*Domain, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, &NotFoundError{Key: id.String()}
		}
		return nil, fmt.Errorf("domain repository error: %w", err)
	}
	return result, nil
}

func (r *BunDomainRepository) Update(ctx context.Context, record *Domain) (*Domain, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("domain repository error: %w", err)
	}
	return updated, nil
}

func (r *BunDomainRepository) ListBySite(ctx context.Context, siteID uuid.UUID) ([]*Domain, error) {
	var records []*Domain
	err := r.db.NewSelect().
		Model(&records).
		Where("site_id = ?", siteID).
		Order("registered_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("domain repository error: %w", err)
	}
	return records, nil
}

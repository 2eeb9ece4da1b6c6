package domains

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var ErrRepositoryRequired = errors.New("domains: repository required")

// NotFoundError reports a missing domain row.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("domain not found: %s", e.Key)
}

// Repository is the persistence contract for domain rows.
type Repository interface {
	Create(ctx context.Context, record *Domain) (*Domain, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Domain, error)
	Update(ctx context.Context, record *Domain) (*Domain, error)
	ListBySite(ctx context.Context, siteID uuid.UUID) ([]*Domain, error)
}

// NewDomainRepository builds the generic bun repository for the Domain model.
func NewDomainRepository(db *bun.DB) repository.Repository[*Domain] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Domain]{
		NewRecord: func() *Domain { return &Domain{} },
		GetID: func(d *Domain) uuid.UUID {
			return d.ID
		},
		SetID: func(d *Domain, id uuid.UUID) {
			d.ID = id
		},
		GetIdentifier: func() string {
			return "hostname"
		},
		GetIdentifierValue: func(d *Domain) string {
			return d.Hostname
		},
	})
}

package sites

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository is the persistence contract the orchestrator needs for sites.
type Repository interface {
	Create(ctx context.Context, record *Site) (*Site, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Site, error)
	Update(ctx context.Context, record *Site) (*Site, error)
	List(ctx context.Context) ([]*Site, error)
	// ListAutomatable returns sites with the suppression flag cleared and a
	// non-terminal lifecycle status, i.e. the autonomous sweep population.
	ListAutomatable(ctx context.Context) ([]*Site, error)
}

// NewSiteRepository builds the generic bun repository for the Site model.
func NewSiteRepository(db *bun.DB) repository.Repository[*Site] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Site]{
		NewRecord: func() *Site { return &Site{} },
		GetID: func(s *Site) uuid.UUID {
			return s.ID
		},
		SetID: func(s *Site, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "name"
		},
		GetIdentifierValue: func(s *Site) string {
			return s.Name
		},
	})
}

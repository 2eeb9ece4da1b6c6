package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var ErrRepositoryRequired = errors.New("tasks: repository required")

// NotFoundError reports a missing task record.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task record not found: %s", e.Key)
}

// Repository is the persistence contract for task records.
//
// DeleteByID must be idempotent: deleting an already-removed record is a
// no-op, so a crashed pass can be replayed safely.
type Repository interface {
	Create(ctx context.Context, record *Record) (*Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	ListBySite(ctx context.Context, siteID uuid.UUID) ([]*Record, error)
	// ListPlaceholders returns every planned-lane record across all sites.
	ListPlaceholders(ctx context.Context) ([]*Record, error)
}

// NewTaskRepository builds the generic bun repository for the Record model.
func NewTaskRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Record]{
		NewRecord: func() *Record { return &Record{} },
		GetID: func(r *Record) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Record, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *Record) string {
			if r == nil {
				return ""
			}
			return r.ID.String()
		},
	})
}

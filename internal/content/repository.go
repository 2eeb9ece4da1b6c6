package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	ErrRepositoryRequired = errors.New("content: repository required")
	ErrTitleRequired      = errors.New("content: title is required")
)

// NotFoundError reports a missing content entry.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("content entry not found: %s", e.Key)
}

// Repository is the persistence contract for content entries.
type Repository interface {
	Create(ctx context.Context, record *Entry) (*Entry, error)
	ListBySite(ctx context.Context, siteID uuid.UUID) ([]*Entry, error)
	// CountBySource counts live entries for a site written by the given
	// source. This is the artifact probe for the content pipeline.
	CountBySource(ctx context.Context, siteID uuid.UUID, source string) (int, error)
}

// SlugForTitle derives the storage slug for an entry title.
func SlugForTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrTitleRequired
	}
	return slug.Normalize(trimmed)
}

// NewEntryRepository builds the generic bun repository for the Entry model.
func NewEntryRepository(db *bun.DB) repository.Repository[*Entry] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Entry]{
		NewRecord: func() *Entry { return &Entry{} },
		GetID: func(e *Entry) uuid.UUID {
			return e.ID
		},
		SetID: func(e *Entry, id uuid.UUID) {
			e.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(e *Entry) string {
			return e.Slug
		},
	})
}

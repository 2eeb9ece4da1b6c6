package orchestrator

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/content"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/domains"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/locks"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/sites"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/tasks"
)

// models lists every table the orchestrator owns, in creation order.
var models = []any{
	(*sites.Site)(nil),
	(*domains.Domain)(nil),
	(*tasks.Record)(nil),
	(*content.Entry)(nil),
	(*locks.Lease)(nil),
}

// RegisterModels registers the orchestrator's models with bun so relations
// resolve before any query runs.
func RegisterModels(db *bun.DB) {
	db.RegisterModel(models...)
}

// CreateSchema creates the orchestrator's tables if they do not exist yet.
// Production deployments run real migrations; this covers tests and demos.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	RegisterModels(db)
	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

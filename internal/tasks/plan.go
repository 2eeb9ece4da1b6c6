package tasks

import (
	"context"
	"time"

	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/catalog"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/identity"
	"github.com/google/uuid"
)

// EnsurePlan seeds one planned-lane placeholder per roadmap type that has no
// record for the site yet. Placeholder IDs derive deterministically from
// (site, type), so concurrent or repeated planning cannot duplicate them.
// Returns the placeholders created by this call.
func EnsurePlan(ctx context.Context, repo Repository, siteID uuid.UUID, now time.Time) ([]*Record, error) {
	existing, err := repo.ListBySite(ctx, siteID)
	if err != nil {
		return nil, err
	}

	covered := make(map[string]bool, len(existing))
	for _, record := range existing {
		covered[record.Type] = true
	}

	var created []*Record
	for _, t := range catalog.Roadmap() {
		if covered[t.String()] {
			continue
		}
		sid := siteID
		record := &Record{
			ID:        identity.PlannedTaskUUID(siteID, t.String()),
			SiteID:    &sid,
			Type:      t.String(),
			Lane:      LanePlanned,
			Status:    string(StatusPending),
			CreatedAt: now,
			UpdatedAt: now,
		}
		stored, err := repo.Create(ctx, record)
		if err != nil {
			return created, err
		}
		created = append(created, stored)
	}
	return created, nil
}

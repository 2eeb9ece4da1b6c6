package roadmap

import (
	"context"
	"fmt"

	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/catalog"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/sites"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/tasks"
)

// Display statuses shown to operators. Invalid is synthetic: the record
// claims completion but the artifact check disagrees, and the next pass will
// correct it.
const (
	DisplayCompleted = "completed"
	DisplayInvalid   = "invalid"
	DisplayBlocked   = "blocked"
	DisplayReady     = "ready"
	DisplayPlanned   = "planned"
)

// TaskView is one roadmap row of the operator overview.
type TaskView struct {
	Type   catalog.Type  `json:"type"`
	Phase  catalog.Phase `json:"phase"`
	Status string        `json:"status"`
	Reason string        `json:"reason,omitempty"`
}

// Overview renders per-type status for a site without mutating anything.
// It distinguishes blocked (self-healing), failed (needs a manual retry) and
// invalid (the system is correcting it).
func (e *Executor) Overview(ctx context.Context, site *sites.Site) ([]TaskView, error) {
	if site == nil {
		return nil, ErrSiteRequired
	}

	records, err := e.tasks.ListBySite(ctx, site.ID)
	if err != nil {
		return nil, fmt.Errorf("loading task records: %w", err)
	}
	report, err := e.validator.Validate(ctx, site)
	if err != nil {
		return nil, fmt.Errorf("validating artifacts: %w", err)
	}

	live := make(map[catalog.Type]*tasks.Record)
	planned := make(map[catalog.Type]bool)
	for _, record := range records {
		t := catalog.Type(record.Type)
		if record.IsPlaceholder() {
			planned[t] = true
			continue
		}
		live[t] = record
	}

	completed := make(map[catalog.Type]bool)
	for _, t := range catalog.Roadmap() {
		record := live[t]
		recordCompleted := record != nil && record.Status == string(tasks.StatusCompleted)
		if (recordCompleted || artifactOnlyCompletion[t]) && report.Valid(t) {
			completed[t] = true
		}
	}

	views := make([]TaskView, 0, len(catalog.Roadmap()))
	for _, t := range catalog.Roadmap() {
		view := TaskView{Type: t, Phase: catalog.PhaseOf(t)}

		record := live[t]
		switch {
		case completed[t]:
			view.Status = DisplayCompleted

		case record != nil && record.Status == string(tasks.StatusCompleted):
			view.Status = DisplayInvalid
			view.Reason = report[t].Reason

		case record != nil:
			view.Status = record.Status
			if record.LastError != nil {
				view.Reason = *record.LastError
			}

		default:
			if unmet := unmetDependencies(t, completed); len(unmet) > 0 {
				view.Status = DisplayBlocked
				view.Reason = "waiting on: " + joinTypes(unmet)
			} else if planned[t] {
				view.Status = DisplayPlanned
			} else {
				view.Status = DisplayReady
			}
		}
		views = append(views, view)
	}
	return views, nil
}

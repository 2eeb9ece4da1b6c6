package roadmap

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/artifacts"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/catalog"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/domains"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/payload"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/sites"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/tasks"
)

// Mode selects how aggressively a pass cleans up task records.
type Mode int

const (
	// ModeAutonomous is the scheduler's conservative mode: failed records are
	// left in place so the loop never turns one failure into a retry storm.
	ModeAutonomous Mode = iota
	// ModeManual is the operator retry mode: failed, orphaned pending, and
	// stale running records are cleared so the task can be queued again.
	ModeManual
)

func (m Mode) String() string {
	if m == ModeManual {
		return "manual"
	}
	return "autonomous"
}

// DefaultStaleRunningAfter is how long a RUNNING record may sit without
// progress before a manual retry treats it as a crashed worker.
const DefaultStaleRunningAfter = 2 * time.Hour

// Domain-pipeline types whose valid artifact alone counts as completion. The
// registration and SSL handlers can be dispatched through support tooling
// that leaves no site-linked task record behind.
var artifactOnlyCompletion = map[catalog.Type]bool{
	catalog.TypeDomainRegister: true,
	catalog.TypeDomainVerify:   true,
	catalog.TypeSSLProvision:   true,
}

// QueuedTask is one enqueue decision with its handler payload.
type QueuedTask struct {
	Type    catalog.Type   `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// SkipEntry reports a type left alone because a live record already covers it.
type SkipEntry struct {
	Type   catalog.Type `json:"type"`
	Status string       `json:"status"`
}

// BlockEntry reports a type that cannot run yet and why. Blocks are
// diagnostics only; they clear themselves once the upstream state appears.
type BlockEntry struct {
	Type   catalog.Type `json:"type"`
	Reason string       `json:"reason"`
}

// Result is the outcome of one executor pass over a single site. The four
// lists are disjoint by construction.
type Result struct {
	Queued   []QueuedTask `json:"queued"`
	Skipped  []SkipEntry  `json:"skipped"`
	Blocked  []BlockEntry `json:"blocked"`
	Requeued []string     `json:"requeued"`
}

// QueuedTypes returns the queued task types in decision order.
func (r *Result) QueuedTypes() []catalog.Type {
	out := make([]catalog.Type, 0, len(r.Queued))
	for _, q := range r.Queued {
		out = append(out, q.Type)
	}
	return out
}

// Summary renders the pass outcome as a single log-friendly line.
func (r *Result) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "queued=%d skipped=%d blocked=%d requeued=%d", len(r.Queued), len(r.Skipped), len(r.Blocked), len(r.Requeued))
	if len(r.Queued) > 0 {
		names := make([]string, 0, len(r.Queued))
		for _, q := range r.Queued {
			names = append(names, q.Type.String())
		}
		fmt.Fprintf(&sb, " [%s]", strings.Join(names, ", "))
	}
	return sb.String()
}

// deletion is a pending record removal with its diagnostic reason.
type deletion struct {
	id     uuid.UUID
	reason string
}

// plan is the full decision set for one pass: which records to delete and
// which tasks to enqueue. Applying it is the only part that touches the store.
type plan struct {
	deletions []deletion
	result    *Result
}

// buildPlan derives every decision of a pass from already-loaded state. It is
// a pure function: same inputs, same plan, which is what makes a crashed pass
// safe to replay.
func buildPlan(site *sites.Site, domainList []*domains.Domain, records []*tasks.Record, report artifacts.Report, mode Mode, now time.Time, staleAfter time.Duration) *plan {
	p := &plan{result: &Result{}}

	deleted := make(map[uuid.UUID]bool)
	remove := func(id uuid.UUID, reason string) {
		if deleted[id] {
			return
		}
		deleted[id] = true
		p.deletions = append(p.deletions, deletion{id: id, reason: reason})
	}

	// Completion is claimed status cross-checked against artifacts. A
	// completed record whose artifact is missing gets deleted so the walk
	// below can queue the type again.
	trulyCompleted := make(map[catalog.Type]bool)
	for _, record := range records {
		if record.IsPlaceholder() || record.Status != string(tasks.StatusCompleted) {
			continue
		}
		t := catalog.Type(record.Type)
		if !catalog.IsRoadmap(t) {
			continue
		}
		if report.Valid(t) {
			trulyCompleted[t] = true
			continue
		}
		reason := report[t].Reason
		remove(record.ID, fmt.Sprintf("completed record failed validation: %s", reason))
		p.result.Requeued = append(p.result.Requeued, fmt.Sprintf("%s: completed record failed validation (%s), requeueing", t, reason))
	}
	for t := range artifactOnlyCompletion {
		if report.Valid(t) {
			trulyCompleted[t] = true
		}
	}

	if mode == ModeManual {
		for _, record := range records {
			if record.IsPlaceholder() || deleted[record.ID] {
				continue
			}
			switch tasks.Status(record.Status) {
			case tasks.StatusFailed:
				remove(record.ID, "failed record cleared for retry")
			case tasks.StatusPending:
				remove(record.ID, "orphaned pending record cleared for retry")
			case tasks.StatusRunning:
				if now.Sub(record.ActivityTime()) > staleAfter {
					remove(record.ID, "stale running record cleared for retry")
				}
			}
		}
	}

	// Live records guard single-flight: a type with one is skipped, never
	// queued a second time. Failed records block only in autonomous mode.
	active := make(map[catalog.Type]string)
	for _, record := range records {
		if record.IsPlaceholder() || deleted[record.ID] {
			continue
		}
		t := catalog.Type(record.Type)
		switch tasks.Status(record.Status) {
		case tasks.StatusRunning, tasks.StatusPending, tasks.StatusScheduled, tasks.StatusRetrying:
			active[t] = record.Status
		case tasks.StatusFailed:
			if mode == ModeAutonomous {
				active[t] = record.Status
			}
		}
	}

	placeholders := make(map[catalog.Type]*tasks.Record)
	for _, record := range records {
		if !record.IsPlaceholder() || deleted[record.ID] {
			continue
		}
		t := catalog.Type(record.Type)
		if trulyCompleted[t] {
			remove(record.ID, "placeholder covered by completed artifact")
			continue
		}
		placeholders[t] = record
	}

	for _, t := range catalog.Roadmap() {
		if trulyCompleted[t] {
			continue
		}
		if status, ok := active[t]; ok {
			p.result.Skipped = append(p.result.Skipped, SkipEntry{Type: t, Status: status})
			continue
		}

		if unmet := unmetDependencies(t, trulyCompleted); len(unmet) > 0 {
			p.result.Blocked = append(p.result.Blocked, BlockEntry{
				Type:   t,
				Reason: "waiting on: " + joinTypes(unmet),
			})
			continue
		}

		params, err := payload.Build(site, domainList, t)
		if err != nil {
			p.result.Blocked = append(p.result.Blocked, BlockEntry{Type: t, Reason: err.Error()})
			continue
		}

		if placeholder := placeholders[t]; placeholder != nil {
			remove(placeholder.ID, "placeholder replaced by live task")
		}
		p.result.Queued = append(p.result.Queued, QueuedTask{Type: t, Payload: params})
	}

	return p
}

func unmetDependencies(t catalog.Type, trulyCompleted map[catalog.Type]bool) []catalog.Type {
	var unmet []catalog.Type
	for _, dep := range catalog.Dependencies(t) {
		if !trulyCompleted[dep] {
			unmet = append(unmet, dep)
		}
	}
	sort.Slice(unmet, func(i, j int) bool { return unmet[i] < unmet[j] })
	return unmet
}

func joinTypes(list []catalog.Type) string {
	names := make([]string, 0, len(list))
	for _, t := range list {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}

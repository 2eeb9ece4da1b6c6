package tasks

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Status is the queue-reported lifecycle of a task record. The orchestrator
// treats it as a claim, not as ground truth.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRetrying  Status = "retrying"
	StatusScheduled Status = "scheduled"
)

// Lane separates records a worker may pick up from inert placeholders.
const (
	// LaneQueue marks a live record the transport delivers to a handler.
	LaneQueue = "queue"
	// LanePlanned marks a placeholder the orchestrator created at plan time.
	// Workers never see it; the executor deletes it when the real task is
	// enqueued or its artifact already exists.
	LanePlanned = "planned"
)

// Record is one orchestration attempt. The executor deletes-and-recreates
// records rather than patching status in most branches, so a row's history is
// one attempt only.
type Record struct {
	bun.BaseModel `bun:"table:site_tasks,alias:t"`

	ID          uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	SiteID      *uuid.UUID     `bun:"site_id,type:uuid" json:"site_id,omitempty"`
	Type        string         `bun:"type,notnull" json:"type"`
	Lane        string         `bun:"lane,notnull,default:'queue'" json:"lane"`
	Status      string         `bun:"status,notnull,default:'pending'" json:"status"`
	Priority    int            `bun:"priority,notnull,default:0" json:"priority"`
	Attempt     int            `bun:"attempt,notnull,default:0" json:"attempt"`
	Payload     map[string]any `bun:"payload,type:jsonb" json:"payload,omitempty"`
	LastError   *string        `bun:"last_error" json:"last_error,omitempty"`
	QueuedAt    *time.Time     `bun:"queued_at,nullzero" json:"queued_at,omitempty"`
	StartedAt   *time.Time     `bun:"started_at,nullzero" json:"started_at,omitempty"`
	CompletedAt *time.Time     `bun:"completed_at,nullzero" json:"completed_at,omitempty"`
	CreatedAt   time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// IsPlaceholder reports whether the record sits in the planned lane.
func (r *Record) IsPlaceholder() bool {
	return r != nil && r.Lane == LanePlanned
}

// ActivityTime returns the best-known timestamp of the record's last
// progress, used for staleness decisions on RUNNING records.
func (r *Record) ActivityTime() time.Time {
	if r == nil {
		return time.Time{}
	}
	if r.StartedAt != nil {
		return *r.StartedAt
	}
	if !r.UpdatedAt.IsZero() {
		return r.UpdatedAt
	}
	return r.CreatedAt
}

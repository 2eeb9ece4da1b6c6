package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Task captures the information required to hand one orchestration step to the
// job transport. The transport delivers it at-least-once to a registered
// handler; the orchestrator never awaits completion.
type Task struct {
	// SiteID scopes the task to a site. Nil for global maintenance tasks.
	SiteID *uuid.UUID
	// Type identifies the handler (one of the catalog task types).
	Type string
	// Payload carries the handler input parameters.
	Payload map[string]any
	// Priority orders delivery when the transport supports it. Lower runs first.
	Priority int
}

// TaskHandle describes a durably enqueued task.
type TaskHandle struct {
	ID       uuid.UUID
	Type     string
	QueuedAt time.Time
}

// Queue is the enqueue-only boundary to the job transport. Implementations
// must be safe to call repeatedly with the same logical task; deduplication is
// the caller's responsibility.
type Queue interface {
	Enqueue(ctx context.Context, task Task) (*TaskHandle, error)
}

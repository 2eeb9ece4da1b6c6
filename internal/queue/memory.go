package queue

import (
	"context"
	"sync"
	"time"

	"github.com/ceverett10/experience-marketplace-platform-sub000/pkg/interfaces"
	"github.com/google/uuid"
)

// Memory is a deterministic queue implementation for tests. It records every
// enqueued task and never delivers anything.
type Memory struct {
	mu    sync.Mutex
	now   func() time.Time
	id    func() uuid.UUID
	tasks []interfaces.Task
	err   error
}

// MemoryOption configures the in-memory queue.
type MemoryOption func(*Memory)

// WithClock overrides the internal clock, used mainly for tests.
func WithClock(clock func() time.Time) MemoryOption {
	return func(q *Memory) {
		if clock != nil {
			q.now = clock
		}
	}
}

// WithIDGenerator overrides the handle ID generator.
func WithIDGenerator(generator func() uuid.UUID) MemoryOption {
	return func(q *Memory) {
		if generator != nil {
			q.id = generator
		}
	}
}

// NewMemory constructs an empty recording queue.
func NewMemory(opts ...MemoryOption) *Memory {
	q := &Memory{
		now: time.Now,
		id:  uuid.New,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

var _ interfaces.Queue = (*Memory)(nil)

func (q *Memory) Enqueue(_ context.Context, task interfaces.Task) (*interfaces.TaskHandle, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.err != nil {
		return nil, q.err
	}

	cloned := task
	if task.Payload != nil {
		cloned.Payload = make(map[string]any, len(task.Payload))
		for k, v := range task.Payload {
			cloned.Payload[k] = v
		}
	}
	q.tasks = append(q.tasks, cloned)

	return &interfaces.TaskHandle{
		ID:       q.id(),
		Type:     task.Type,
		QueuedAt: q.now(),
	}, nil
}

// Tasks returns a snapshot of everything enqueued so far.
func (q *Memory) Tasks() []interfaces.Task {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]interfaces.Task, len(q.tasks))
	copy(out, q.tasks)
	return out
}

// TypesEnqueued returns the enqueued task types in order.
func (q *Memory) TypesEnqueued() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]string, 0, len(q.tasks))
	for _, t := range q.tasks {
		out = append(out, t.Type)
	}
	return out
}

// Fail configures the queue to return err on subsequent Enqueue calls.
func (q *Memory) Fail(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.err = err
}

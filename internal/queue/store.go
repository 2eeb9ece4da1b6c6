package queue

import (
	"context"
	"errors"
	"time"

	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/tasks"
	"github.com/ceverett10/experience-marketplace-platform-sub000/pkg/interfaces"
	"github.com/google/uuid"
)

var ErrTaskRepositoryRequired = errors.New("queue: task repository required")

// Store is the production queue boundary: enqueueing durably creates a
// pending task record in the live lane. The transport's worker pool polls
// that table and delivers records to handlers; delivery is out of scope here.
type Store struct {
	repo tasks.Repository
	now  func() time.Time
}

// StoreOption configures the store-backed queue.
type StoreOption func(*Store)

// WithStoreClock overrides the timestamp source.
func WithStoreClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewStore constructs a queue that persists tasks through the repository.
func NewStore(repo tasks.Repository, opts ...StoreOption) *Store {
	if repo == nil {
		panic(ErrTaskRepositoryRequired)
	}
	s := &Store{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ interfaces.Queue = (*Store)(nil)

func (s *Store) Enqueue(ctx context.Context, task interfaces.Task) (*interfaces.TaskHandle, error) {
	now := s.now()
	record := &tasks.Record{
		ID:        uuid.New(),
		SiteID:    task.SiteID,
		Type:      task.Type,
		Lane:      tasks.LaneQueue,
		Status:    string(tasks.StatusPending),
		Priority:  task.Priority,
		Payload:   task.Payload,
		QueuedAt:  &now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return &interfaces.TaskHandle{
		ID:       stored.ID,
		Type:     stored.Type,
		QueuedAt: now,
	}, nil
}

package locks

import (
	"context"
	"sync"
	"time"

	"github.com/ceverett10/experience-marketplace-platform-sub000/pkg/interfaces"
	"github.com/google/uuid"
)

type memoryLease struct {
	holder    uuid.UUID
	expiresAt time.Time
}

// MemoryLocker is an in-process lease locker. A lease is exclusive per
// resource name until it is released or its TTL elapses.
type MemoryLocker struct {
	mu     sync.Mutex
	now    func() time.Time
	leases map[string]memoryLease
}

// MemoryOption configures the in-memory locker.
type MemoryOption func(*MemoryLocker)

// WithClock overrides the lease clock, used in tests to force expiry.
func WithClock(clock func() time.Time) MemoryOption {
	return func(l *MemoryLocker) {
		if clock != nil {
			l.now = clock
		}
	}
}

// NewMemoryLocker constructs an empty locker.
func NewMemoryLocker(opts ...MemoryOption) *MemoryLocker {
	l := &MemoryLocker{
		now:    time.Now,
		leases: make(map[string]memoryLease),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ interfaces.Locker = (*MemoryLocker)(nil)

func (l *MemoryLocker) TryAcquire(_ context.Context, resource string, ttl time.Duration) (interfaces.Release, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if lease, ok := l.leases[resource]; ok && lease.expiresAt.After(now) {
		return nil, nil
	}

	holder := uuid.New()
	l.leases[resource] = memoryLease{holder: holder, expiresAt: now.Add(ttl)}

	release := func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		// Only the holder that acquired this lease may clear it; a later
		// holder on the same resource is left untouched.
		if lease, ok := l.leases[resource]; ok && lease.holder == holder {
			delete(l.leases, resource)
		}
		return nil
	}
	return release, nil
}

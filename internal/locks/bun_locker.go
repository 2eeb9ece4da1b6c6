package locks

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/identity"
	"github.com/ceverett10/experience-marketplace-platform-sub000/pkg/interfaces"
)

var ErrDBRequired = errors.New("locks: bun db required")

// Lease is one row of the leases table. The resource name is the primary key,
// so at most one holder can own a resource at a time.
type Lease struct {
	bun.BaseModel `bun:"table:leases,alias:l"`

	Resource   string    `bun:"resource,pk"`
	Holder     uuid.UUID `bun:"holder,type:uuid,notnull"`
	AcquiredAt time.Time `bun:"acquired_at,notnull"`
	ExpiresAt  time.Time `bun:"expires_at,notnull"`
}

// BunLocker implements lease locking on top of the shared database, so
// instances on different hosts contend through the same table.
type BunLocker struct {
	db     *bun.DB
	holder uuid.UUID
	now    func() time.Time
}

// BunOption configures the database-backed locker.
type BunOption func(*BunLocker)

// WithBunClock overrides the lease clock.
func WithBunClock(clock func() time.Time) BunOption {
	return func(l *BunLocker) {
		if clock != nil {
			l.now = clock
		}
	}
}

// NewBunLocker constructs a locker whose holder identity is derived from the
// instance name, so restarts of the same instance keep a stable identity.
func NewBunLocker(db *bun.DB, instance string, opts ...BunOption) *BunLocker {
	if db == nil {
		panic(ErrDBRequired)
	}
	l := &BunLocker{
		db:     db,
		holder: identity.LeaseHolderUUID(instance),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ interfaces.Locker = (*BunLocker)(nil)

func (l *BunLocker) TryAcquire(ctx context.Context, resource string, ttl time.Duration) (interfaces.Release, error) {
	now := l.now()
	lease := &Lease{
		Resource:   resource,
		Holder:     l.holder,
		AcquiredAt: now,
		ExpiresAt:  now.Add(ttl),
	}

	// Insert wins when no row exists; the conflict branch steals the row only
	// when the previous lease already expired.
	res, err := l.db.NewInsert().
		Model(lease).
		On("CONFLICT (resource) DO UPDATE").
		Set("holder = EXCLUDED.holder").
		Set("acquired_at = EXCLUDED.acquired_at").
		Set("expires_at = EXCLUDED.expires_at").
		Where("l.expires_at <= ?", now).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}

	release := func(ctx context.Context) error {
		_, err := l.db.NewDelete().
			Model((*Lease)(nil)).
			Where("resource = ?", resource).
			Where("holder = ?", l.holder).
			Exec(ctx)
		return err
	}
	return release, nil
}

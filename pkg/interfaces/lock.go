package interfaces

import (
	"context"
	"time"
)

// Release frees a held lease. Implementations must tolerate repeated calls and
// calls after the lease already expired.
type Release func(ctx context.Context) error

// Locker hands out short-lived exclusive leases keyed by resource name.
//
// TryAcquire never blocks: it returns a nil Release when another holder owns a
// live lease on the resource. Leases auto-expire after ttl so a crashed holder
// cannot wedge the resource.
type Locker interface {
	TryAcquire(ctx context.Context, resource string, ttl time.Duration) (Release, error)
}

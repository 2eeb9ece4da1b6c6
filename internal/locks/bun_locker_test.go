package locks

import (
	"context"
	"testing"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/ceverett10/experience-marketplace-platform-sub000/pkg/testsupport"
)

func newLeaseDB(t *testing.T) *bun.DB {
	t.Helper()
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.NewCreateTable().Model((*Lease)(nil)).IfNotExists().Exec(context.Background()); err != nil {
		t.Fatalf("create leases table: %v", err)
	}
	return db
}

func TestBunLockerExclusive(t *testing.T) {
	db := newLeaseDB(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	a := NewBunLocker(db, "host-a", WithBunClock(func() time.Time { return now }))
	b := NewBunLocker(db, "host-b", WithBunClock(func() time.Time { return now }))

	releaseA, err := a.TryAcquire(ctx, "orchestrator:autopilot", time.Minute)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if releaseA == nil {
		t.Fatal("expected the first holder to acquire")
	}

	release, err := b.TryAcquire(ctx, "orchestrator:autopilot", time.Minute)
	if err != nil {
		t.Fatalf("contended acquire: %v", err)
	}
	if release != nil {
		t.Fatal("second holder acquired a live lease")
	}

	if err := releaseA(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	release, err = b.TryAcquire(ctx, "orchestrator:autopilot", time.Minute)
	if err != nil || release == nil {
		t.Fatalf("acquire after release: release=%v err=%v", release, err)
	}
}

func TestBunLockerStealsExpiredLease(t *testing.T) {
	db := newLeaseDB(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	aNow, bNow := base, base
	a := NewBunLocker(db, "host-a", WithBunClock(func() time.Time { return aNow }))
	b := NewBunLocker(db, "host-b", WithBunClock(func() time.Time { return bNow }))

	releaseA, err := a.TryAcquire(ctx, "orchestrator:autopilot", time.Minute)
	if err != nil || releaseA == nil {
		t.Fatalf("initial acquire: release=%v err=%v", releaseA, err)
	}

	// A crashed holder never releases; the successor takes over once the
	// lease's expires_at passes.
	bNow = base.Add(2 * time.Minute)
	releaseB, err := b.TryAcquire(ctx, "orchestrator:autopilot", time.Minute)
	if err != nil {
		t.Fatalf("takeover acquire: %v", err)
	}
	if releaseB == nil {
		t.Fatal("expired lease was not stolen")
	}

	// The first holder's release is scoped to its own identity and must not
	// clear the successor's lease.
	if err := releaseA(ctx); err != nil {
		t.Fatalf("stale release: %v", err)
	}
	aNow = base.Add(2 * time.Minute)
	release, err := a.TryAcquire(ctx, "orchestrator:autopilot", time.Minute)
	if err != nil {
		t.Fatalf("re-acquire after stale release: %v", err)
	}
	if release != nil {
		t.Fatal("stale release cleared the successor's lease")
	}

	if err := releaseB(ctx); err != nil {
		t.Fatalf("successor release: %v", err)
	}
	release, err = a.TryAcquire(ctx, "orchestrator:autopilot", time.Minute)
	if err != nil || release == nil {
		t.Fatalf("acquire after successor release: release=%v err=%v", release, err)
	}
}

package autopilot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/artifacts"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/catalog"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/content"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/domains"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/locks"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/queue"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/roadmap"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/sites"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/tasks"
)

type harness struct {
	runner  *Runner
	sites   sites.Repository
	tasks   tasks.Repository
	domains domains.Repository
	locker  *locks.MemoryLocker
	now     time.Time
}

// failingDomains fails domain listing for one site, leaving the rest of the
// population unaffected.
type failingDomains struct {
	domains.Repository
	failFor uuid.UUID
}

func (f *failingDomains) ListBySite(ctx context.Context, siteID uuid.UUID) ([]*domains.Domain, error) {
	if siteID == f.failFor {
		return nil, errors.New("domain store unavailable")
	}
	return f.Repository.ListBySite(ctx, siteID)
}

func newHarness(t *testing.T, domainRepo domains.Repository) *harness {
	t.Helper()

	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	siteRepo := sites.NewMemoryRepository()
	taskRepo := tasks.NewMemoryRepository()
	if domainRepo == nil {
		domainRepo = domains.NewMemoryRepository()
	}
	contentRepo := content.NewMemoryRepository()
	validator := artifacts.NewValidator(contentRepo, domainRepo)
	q := queue.NewStore(taskRepo, queue.WithStoreClock(func() time.Time { return now }))
	executor := roadmap.NewExecutor(taskRepo, domainRepo, validator, q,
		roadmap.WithClock(func() time.Time { return now }),
	)
	locker := locks.NewMemoryLocker(locks.WithClock(func() time.Time { return now }))

	runner := NewRunner(siteRepo, taskRepo, executor, locker,
		WithInterval(time.Minute),
		WithLockTTL(30*time.Second),
	)
	return &harness{
		runner:  runner,
		sites:   siteRepo,
		tasks:   taskRepo,
		domains: domainRepo,
		locker:  locker,
		now:     now,
	}
}

func (h *harness) addSite(t *testing.T, status sites.Status, paused bool) *sites.Site {
	t.Helper()
	site, err := h.sites.Create(context.Background(), &sites.Site{
		ID:               uuid.New(),
		Name:             "site-" + uuid.NewString()[:8],
		Status:           string(status),
		AutomationPaused: paused,
		CreatedAt:        h.now,
		UpdatedAt:        h.now,
	})
	if err != nil {
		t.Fatalf("create site: %v", err)
	}
	return site
}

func TestRunOnceSweepsInScopeSites(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	building := h.addSite(t, sites.StatusBuilding, false)
	h.addSite(t, sites.StatusActive, false)
	h.addSite(t, sites.StatusCreated, true)

	sweep, err := h.runner.RunOnce(ctx)
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if !sweep.Acquired {
		t.Fatal("expected the lease to be acquired")
	}
	if sweep.Sites != 1 {
		t.Fatalf("expected one in-scope site, got %d", sweep.Sites)
	}
	// A fresh site queues its two roadmap roots.
	if sweep.Queued != 2 {
		t.Fatalf("expected two queued tasks, got %s", sweep.Summary())
	}

	records, err := h.tasks.ListBySite(ctx, building.ID)
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected two live records, got %d", len(records))
	}
}

func TestRunOnceSkipsWhenLockHeld(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	h.addSite(t, sites.StatusBuilding, false)

	release, err := h.locker.TryAcquire(ctx, LockResource, time.Minute)
	if err != nil || release == nil {
		t.Fatalf("pre-acquire: release=%v err=%v", release, err)
	}

	sweep, err := h.runner.RunOnce(ctx)
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if sweep.Acquired {
		t.Fatal("expected a silent skip while the lease is held")
	}
	if sweep.Sites != 0 || sweep.Queued != 0 {
		t.Fatalf("contended sweep must do no work, got %s", sweep.Summary())
	}

	if err := release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	sweep, err = h.runner.RunOnce(ctx)
	if err != nil {
		t.Fatalf("run once after release: %v", err)
	}
	if !sweep.Acquired || sweep.Sites != 1 {
		t.Fatalf("expected work after release, got %s", sweep.Summary())
	}
}

func TestRunOnceReleasesLease(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	if _, err := h.runner.RunOnce(ctx); err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	sweep, err := h.runner.RunOnce(ctx)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if !sweep.Acquired {
		t.Fatal("lease not released between sweeps")
	}
}

func TestRunOnceCollectsPerSiteErrors(t *testing.T) {
	broken := uuid.New()
	inner := domains.NewMemoryRepository()
	h := newHarness(t, &failingDomains{Repository: inner, failFor: broken})
	ctx := context.Background()

	bad, err := h.sites.Create(ctx, &sites.Site{
		ID:        broken,
		Name:      "broken-site",
		Status:    string(sites.StatusBuilding),
		CreatedAt: h.now.Add(-time.Hour),
		UpdatedAt: h.now,
	})
	if err != nil {
		t.Fatalf("create site: %v", err)
	}
	good := h.addSite(t, sites.StatusBuilding, false)

	sweep, err := h.runner.RunOnce(ctx)
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if len(sweep.Errors) != 1 || sweep.Errors[0].SiteID != bad.ID {
		t.Fatalf("expected the broken site collected, got %+v", sweep.Errors)
	}
	if sweep.Sites != 1 {
		t.Fatalf("healthy site not processed, got %s", sweep.Summary())
	}

	records, err := h.tasks.ListBySite(ctx, good.ID)
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("healthy site got no work despite the broken one")
	}
}

func TestRunOnceRemovesOrphanedPlaceholders(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	archived := h.addSite(t, sites.StatusArchived, false)
	live := h.addSite(t, sites.StatusBuilding, false)

	mkPlaceholder := func(siteID uuid.UUID) uuid.UUID {
		id := uuid.New()
		sid := siteID
		if _, err := h.tasks.Create(ctx, &tasks.Record{
			ID:        id,
			SiteID:    &sid,
			Type:      catalog.TypeSitemapGenerate.String(),
			Lane:      tasks.LanePlanned,
			Status:    string(tasks.StatusPending),
			CreatedAt: h.now,
			UpdatedAt: h.now,
		}); err != nil {
			t.Fatalf("create placeholder: %v", err)
		}
		return id
	}
	orphan := mkPlaceholder(archived.ID)
	kept := mkPlaceholder(live.ID)

	sweep, err := h.runner.RunOnce(ctx)
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if sweep.OrphansRemoved != 1 {
		t.Fatalf("expected one orphan removed, got %d", sweep.OrphansRemoved)
	}

	placeholders, err := h.tasks.ListPlaceholders(ctx)
	if err != nil {
		t.Fatalf("list placeholders: %v", err)
	}
	for _, p := range placeholders {
		if p.ID == orphan {
			t.Fatal("orphaned placeholder survived")
		}
	}
	// The in-scope placeholder is either still planned or was activated by
	// the sweep; it must not have been removed as an orphan.
	if _, err := h.tasks.GetByID(ctx, kept); err != nil {
		records, lerr := h.tasks.ListBySite(ctx, live.ID)
		if lerr != nil || len(records) == 0 {
			t.Fatalf("live site's placeholder vanished without activation: %v", err)
		}
	}
}

func TestStartRejectsTTLNotBelowInterval(t *testing.T) {
	h := newHarness(t, nil)
	runner := NewRunner(h.sites, h.tasks, h.runner.executor, h.locker,
		WithInterval(time.Minute),
		WithLockTTL(time.Minute),
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := runner.Start(ctx); !errors.Is(err, ErrTTLExceedsInterval) {
		t.Fatalf("expected ErrTTLExceedsInterval, got %v", err)
	}
}

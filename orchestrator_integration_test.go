package orchestrator_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	orchestrator "github.com/ceverett10/experience-marketplace-platform-sub000"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/catalog"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/content"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/di"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/domains"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/tasks"
	"github.com/ceverett10/experience-marketplace-platform-sub000/pkg/testsupport"
)

func newModule(t *testing.T) (*orchestrator.Module, *bun.DB) {
	t.Helper()
	ctx := context.Background()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)
	if err := orchestrator.CreateSchema(ctx, bunDB); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	cfg := orchestrator.DefaultConfig()
	cfg.Scheduler.Interval = time.Minute
	cfg.Scheduler.LockTTL = 30 * time.Second

	module, err := orchestrator.New(cfg, di.WithBunDB(bunDB))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	return module, bunDB
}

func TestModuleLaunchPipelineAgainstSQLite(t *testing.T) {
	ctx := context.Background()
	module, bunDB := newModule(t)

	site, err := module.Sites().CreateSite(ctx, orchestrator.CreateSiteInput{
		Name:           "Algarve Surf Camps",
		HomepageConfig: map[string]any{"destination": "Algarve"},
	})
	if err != nil {
		t.Fatalf("create site: %v", err)
	}

	// First sweep: a fresh site queues exactly the two roadmap roots.
	sweep, err := module.Runner().RunOnce(ctx)
	if err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	if !sweep.Acquired || sweep.Sites != 1 || sweep.Queued != 2 {
		t.Fatalf("unexpected first sweep: %s", sweep.Summary())
	}

	// Second sweep with no handler activity must queue nothing.
	sweep, err = module.Runner().RunOnce(ctx)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if sweep.Queued != 0 {
		t.Fatalf("second sweep not idempotent: %s", sweep.Summary())
	}

	// Simulate the content and registration handlers finishing their work.
	now := time.Now().UTC()
	if _, err := bunDB.NewUpdate().
		Model((*tasks.Record)(nil)).
		Set("status = ?", string(tasks.StatusCompleted)).
		Set("completed_at = ?", now).
		Where("site_id = ?", site.ID).
		Where("type IN (?)", bun.In([]string{
			catalog.TypeContentGenerate.String(),
			catalog.TypeDomainRegister.String(),
		})).
		Exec(ctx); err != nil {
		t.Fatalf("complete records: %v", err)
	}
	if _, err := bunDB.NewInsert().Model(&content.Entry{
		ID:        uuid.New(),
		SiteID:    site.ID,
		Slug:      "algarve-surf-guide",
		Title:     "Algarve Surf Guide",
		Body:      "...",
		Source:    content.SourceAI,
		CreatedAt: now,
		UpdatedAt: now,
	}).Exec(ctx); err != nil {
		t.Fatalf("insert content: %v", err)
	}
	if _, err := bunDB.NewInsert().Model(&domains.Domain{
		ID:           uuid.New(),
		SiteID:       site.ID,
		Hostname:     "algarve-surf-camps.com",
		Status:       string(domains.StatusRegistering),
		RegistrarID:  "cloudflare",
		RegisteredAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Exec(ctx); err != nil {
		t.Fatalf("insert domain: %v", err)
	}

	// Third sweep: the completed roots unlock their direct dependents.
	sweep, err = module.Runner().RunOnce(ctx)
	if err != nil {
		t.Fatalf("third sweep: %v", err)
	}
	if sweep.Queued != 2 {
		t.Fatalf("expected content_optimize and domain_verify, got %s", sweep.Summary())
	}

	var pending []*tasks.Record
	if err := bunDB.NewSelect().
		Model(&pending).
		Where("site_id = ?", site.ID).
		Where("status = ?", string(tasks.StatusPending)).
		Scan(ctx); err != nil {
		t.Fatalf("list pending: %v", err)
	}
	types := make(map[string]bool)
	for _, r := range pending {
		types[r.Type] = true
	}
	if !types[catalog.TypeContentOptimize.String()] || !types[catalog.TypeDomainVerify.String()] {
		t.Fatalf("unexpected pending types: %v", types)
	}
}

func TestModuleOverviewAgainstSQLite(t *testing.T) {
	ctx := context.Background()
	module, _ := newModule(t)

	site, err := module.Sites().CreateSite(ctx, orchestrator.CreateSiteInput{Name: "Madeira Levada Walks"})
	if err != nil {
		t.Fatalf("create site: %v", err)
	}

	views, err := module.Executor().Overview(ctx, site)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(views) != len(catalog.Roadmap()) {
		t.Fatalf("expected one row per roadmap type, got %d", len(views))
	}
	ready := 0
	for _, v := range views {
		if v.Status == "ready" {
			ready++
		}
	}
	// Only the two dependency-free roots are immediately runnable.
	if ready != 2 {
		t.Fatalf("expected two ready types on a fresh site, got %d", ready)
	}
}

func TestModuleRejectsInvalidConfig(t *testing.T) {
	cfg := orchestrator.DefaultConfig()
	cfg.Scheduler.LockTTL = cfg.Scheduler.Interval

	if _, err := orchestrator.New(cfg); err == nil {
		t.Fatal("expected config validation to fail")
	}
}

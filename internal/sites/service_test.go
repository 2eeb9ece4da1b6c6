package sites

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ceverett10/experience-marketplace-platform-sub000/pkg/testsupport"
)

func TestServiceCreateSite(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	svc := NewService(repo, WithNow(func() time.Time { return now }))

	site, err := svc.CreateSite(ctx, CreateSiteInput{
		Name:           "Lisbon Food Tours",
		HomepageConfig: map[string]any{"destination": "Lisbon"},
	})
	if err != nil {
		t.Fatalf("create site: %v", err)
	}
	if site.Status != string(StatusCreated) {
		t.Fatalf("expected created status, got %s", site.Status)
	}
	if site.AutomationPaused {
		t.Fatalf("new sites must not be suppressed")
	}
	if !site.CreatedAt.Equal(now) {
		t.Fatalf("unexpected created_at %v", site.CreatedAt)
	}
}

func TestServiceCreateSiteRequiresName(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	if _, err := svc.CreateSite(context.Background(), CreateSiteInput{Name: "  "}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestServiceUpdateSEOConfigValidatesSchema(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	site, err := svc.CreateSite(ctx, CreateSiteInput{Name: "Porto Surf"})
	if err != nil {
		t.Fatalf("create site: %v", err)
	}

	if _, err := svc.UpdateSEOConfig(ctx, site.ID, map[string]any{
		"meta_title": "Porto Surf Lessons",
		"keywords":   []string{"surf", "porto"},
	}); err != nil {
		t.Fatalf("valid seo config rejected: %v", err)
	}

	if _, err := svc.UpdateSEOConfig(ctx, site.ID, map[string]any{
		"keywords": "not-a-list",
	}); !errors.Is(err, ErrSEOConfigInvalid) {
		t.Fatalf("expected ErrSEOConfigInvalid, got %v", err)
	}
}

func TestServiceSEOConfigFixtures(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	site, err := svc.CreateSite(ctx, CreateSiteInput{Name: "Lisbon Food Tours"})
	if err != nil {
		t.Fatalf("create site: %v", err)
	}

	cfg := testsupport.LoadJSONFixture(t, "seo_config.json")
	updated, err := svc.UpdateSEOConfig(ctx, site.ID, cfg)
	if err != nil {
		t.Fatalf("fixture seo config rejected: %v", err)
	}
	if updated.SEOConfig["meta_title"] != "Lisbon Food Tours" {
		t.Fatalf("config blob not stored, got %v", updated.SEOConfig)
	}

	bad := testsupport.LoadJSONFixture(t, "seo_config_invalid.json")
	if _, err := svc.UpdateSEOConfig(ctx, site.ID, bad); !errors.Is(err, ErrSEOConfigInvalid) {
		t.Fatalf("expected ErrSEOConfigInvalid, got %v", err)
	}
}

func TestInScope(t *testing.T) {
	cases := []struct {
		status Status
		paused bool
		want   bool
	}{
		{StatusCreated, false, true},
		{StatusBuilding, false, true},
		{StatusLaunching, false, true},
		{StatusActive, false, false},
		{StatusPaused, false, false},
		{StatusArchived, false, false},
		{StatusCreated, true, false},
	}
	for _, tc := range cases {
		site := &Site{Status: string(tc.status), AutomationPaused: tc.paused}
		if got := site.InScope(); got != tc.want {
			t.Fatalf("InScope(%s, paused=%v) = %v, want %v", tc.status, tc.paused, got, tc.want)
		}
	}
}

func TestMemoryListAutomatable(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	active := &Site{Name: "live", Status: string(StatusActive)}
	pending := &Site{Name: "pending", Status: string(StatusBuilding)}
	suppressed := &Site{Name: "held", Status: string(StatusBuilding), AutomationPaused: true}
	for _, s := range []*Site{active, pending, suppressed} {
		if _, err := repo.Create(ctx, s); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := repo.ListAutomatable(ctx)
	if err != nil {
		t.Fatalf("list automatable: %v", err)
	}
	if len(got) != 1 || got[0].Name != "pending" {
		t.Fatalf("expected only the pending site, got %d records", len(got))
	}
}

package domains

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func domainAt(host string, registered time.Time) *Domain {
	return &Domain{
		ID:           uuid.New(),
		SiteID:       uuid.New(),
		Hostname:     host,
		Status:       string(StatusRegistering),
		RegisteredAt: registered,
	}
}

func TestFirstUnverifiedFallsThroughVerified(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	verified := domainAt("a.example", base)
	ts := base.Add(time.Hour)
	verified.VerifiedAt = &ts
	pending := domainAt("b.example", base.Add(2*time.Hour))

	got := FirstUnverified([]*Domain{verified, pending})
	if got == nil || got.Hostname != "b.example" {
		t.Fatalf("expected b.example, got %+v", got)
	}

	if FirstUnverified([]*Domain{verified}) != nil {
		t.Fatalf("expected nil when every domain is verified")
	}
}

func TestMostRecent(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	older := domainAt("old.example", base)
	newer := domainAt("new.example", base.Add(time.Hour))

	if got := MostRecent([]*Domain{older, newer}); got == nil || got.Hostname != "new.example" {
		t.Fatalf("expected new.example, got %+v", got)
	}
	if MostRecent(nil) != nil {
		t.Fatalf("expected nil for empty list")
	}
}

func TestMostRecentlyVerified(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	first := domainAt("first.example", base)
	firstTS := base.Add(time.Hour)
	first.VerifiedAt = &firstTS
	second := domainAt("second.example", base)
	secondTS := base.Add(2 * time.Hour)
	second.VerifiedAt = &secondTS
	unverified := domainAt("none.example", base)

	got := MostRecentlyVerified([]*Domain{first, unverified, second})
	if got == nil || got.Hostname != "second.example" {
		t.Fatalf("expected second.example, got %+v", got)
	}
	if MostRecentlyVerified([]*Domain{unverified}) != nil {
		t.Fatalf("expected nil when nothing is verified")
	}
}

func TestFirstActiveWithZone(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	zone := "zone-123"
	active := domainAt("active.example", base)
	active.Status = string(StatusActive)
	active.CDNZoneID = &zone
	activeNoZone := domainAt("nozone.example", base)
	activeNoZone.Status = string(StatusActive)
	pending := domainAt("pending.example", base)
	pending.CDNZoneID = &zone

	if got := FirstActiveWithZone([]*Domain{activeNoZone, pending, active}); got == nil || got.Hostname != "active.example" {
		t.Fatalf("expected active.example, got %+v", got)
	}
	if FirstActiveWithZone([]*Domain{activeNoZone, pending}) != nil {
		t.Fatalf("expected nil without an active zoned domain")
	}
}

func TestAggregateChecks(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := domainAt("agg.example", base)
	if AnyActive([]*Domain{d}) || AnyVerified([]*Domain{d}) || AnySSLEnabled([]*Domain{d}) || AnyWithZone([]*Domain{d}) {
		t.Fatalf("fresh domain should fail every aggregate check")
	}

	ts := base.Add(time.Hour)
	zone := "zone-9"
	d.Status = string(StatusActive)
	d.VerifiedAt = &ts
	d.SSLEnabled = true
	d.CDNZoneID = &zone
	if !AnyActive([]*Domain{d}) || !AnyVerified([]*Domain{d}) || !AnySSLEnabled([]*Domain{d}) || !AnyWithZone([]*Domain{d}) {
		t.Fatalf("provisioned domain should pass every aggregate check")
	}
}

package sites

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Status represents site lifecycle states. The orchestrator only acts on
// pre-launch sites; the terminal trio is owned by the wider platform.
type Status string

const (
	// StatusCreated marks a freshly provisioned site with no artifacts yet.
	StatusCreated Status = "created"
	// StatusBuilding marks a site whose launch pipeline is in flight.
	StatusBuilding Status = "building"
	// StatusLaunching marks a site past deploy awaiting final checks.
	StatusLaunching Status = "launching"
	// StatusActive identifies a live site serving traffic.
	StatusActive Status = "active"
	// StatusPaused marks a site temporarily taken offline by an operator.
	StatusPaused Status = "paused"
	// StatusArchived marks a site retained for history only.
	StatusArchived Status = "archived"
)

// terminalStatuses are the states that permanently remove a site from
// orchestrator scope.
var terminalStatuses = map[Status]bool{
	StatusActive:   true,
	StatusPaused:   true,
	StatusArchived: true,
}

// Site is the denormalized site row. The orchestrator reads and writes only
// the fields relevant to launch gating; everything else belongs to other
// platform subsystems.
type Site struct {
	bun.BaseModel `bun:"table:sites,alias:s"`

	ID                      uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Name                    string         `bun:"name,notnull" json:"name"`
	Status                  string         `bun:"status,notnull,default:'created'" json:"status"`
	AutomationPaused        bool           `bun:"automation_paused,notnull,default:false" json:"automation_paused"`
	PrimaryDomain           *string        `bun:"primary_domain" json:"primary_domain,omitempty"`
	SearchConsoleURL        *string        `bun:"search_console_url" json:"search_console_url,omitempty"`
	SearchConsoleVerifiedAt *time.Time     `bun:"search_console_verified_at,nullzero" json:"search_console_verified_at,omitempty"`
	SearchConsoleSyncedAt   *time.Time     `bun:"search_console_synced_at,nullzero" json:"search_console_synced_at,omitempty"`
	AnalyticsPropertyID     *string        `bun:"analytics_property_id" json:"analytics_property_id,omitempty"`
	SEOConfig               map[string]any `bun:"seo_config,type:jsonb" json:"seo_config,omitempty"`
	HomepageConfig          map[string]any `bun:"homepage_config,type:jsonb" json:"homepage_config,omitempty"`
	CreatedAt               time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt               time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// InScope reports whether the orchestrator may act on the site: suppression
// flag cleared and lifecycle status not terminal.
func (s *Site) InScope() bool {
	if s == nil || s.AutomationPaused {
		return false
	}
	return !terminalStatuses[Status(s.Status)]
}

// IsTerminal reports whether a status permanently exits orchestrator scope.
func IsTerminal(status Status) bool {
	return terminalStatuses[status]
}

package domains

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Status tracks a domain through registration, DNS, and SSL provisioning.
type Status string

const (
	StatusRegistering Status = "registering"
	StatusDNSPending  Status = "dns_pending"
	StatusSSLPending  Status = "ssl_pending"
	StatusActive      Status = "active"
	StatusExpired     Status = "expired"
	StatusSuspended   Status = "suspended"
)

// Domain is one registered hostname belonging to a site. The registration
// handler creates the row; verification and SSL handlers mutate it. The
// orchestrator only reads domains, both as artifacts and as payload inputs.
type Domain struct {
	bun.BaseModel `bun:"table:domains,alias:d"`

	ID           uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	SiteID       uuid.UUID  `bun:"site_id,notnull,type:uuid" json:"site_id"`
	Hostname     string     `bun:"hostname,notnull" json:"hostname"`
	Status       string     `bun:"status,notnull,default:'registering'" json:"status"`
	RegistrarID  string     `bun:"registrar_id" json:"registrar_id,omitempty"`
	CDNZoneID    *string    `bun:"cdn_zone_id" json:"cdn_zone_id,omitempty"`
	SSLEnabled   bool       `bun:"ssl_enabled,notnull,default:false" json:"ssl_enabled"`
	RegisteredAt time.Time  `bun:"registered_at,nullzero,default:current_timestamp" json:"registered_at"`
	VerifiedAt   *time.Time `bun:"verified_at,nullzero" json:"verified_at,omitempty"`
	CreatedAt    time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Verified reports whether the verification handler confirmed ownership.
func (d *Domain) Verified() bool {
	return d != nil && d.VerifiedAt != nil
}

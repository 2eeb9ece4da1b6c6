package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Source tags who produced a content entry.
const (
	// SourceAI marks rows written by the generation handler. Their existence
	// is the artifact proving content tasks truly ran.
	SourceAI = "ai"
	// SourceManual marks operator-authored rows.
	SourceManual = "manual"
)

// Entry is one generated-content row scoped to a site. The orchestrator never
// writes entries; it only counts them as artifacts.
type Entry struct {
	bun.BaseModel `bun:"table:content_entries,alias:ce"`

	ID        uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	SiteID    uuid.UUID  `bun:"site_id,notnull,type:uuid" json:"site_id"`
	Slug      string     `bun:"slug,notnull" json:"slug"`
	Title     string     `bun:"title,notnull" json:"title"`
	Body      string     `bun:"body" json:"body,omitempty"`
	Category  *string    `bun:"category" json:"category,omitempty"`
	Source    string     `bun:"source,notnull,default:'ai'" json:"source"`
	DeletedAt *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

package artifacts

import (
	"context"
	"errors"
	"fmt"

	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/catalog"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/content"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/domains"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/logging"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/sites"
	"github.com/ceverett10/experience-marketplace-platform-sub000/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	ErrContentRepositoryRequired = errors.New("artifacts: content repository required")
	ErrDomainRepositoryRequired  = errors.New("artifacts: domain repository required")
)

// Check is the verdict for one task type: either the real-world effect exists
// or Reason explains what is missing.
type Check struct {
	Valid  bool
	Reason string
}

// Report maps every catalog task type to its artifact verdict for one site.
type Report map[catalog.Type]Check

// Valid reports the verdict for a type. Types absent from the report (unknown
// to the catalog) count as invalid.
func (r Report) Valid(t catalog.Type) bool {
	check, ok := r[t]
	return ok && check.Valid
}

// ContentCounter is the slice of the content repository the validator needs.
type ContentCounter interface {
	CountBySource(ctx context.Context, siteID uuid.UUID, source string) (int, error)
}

// DomainLister is the slice of the domain repository the validator needs.
type DomainLister interface {
	ListBySite(ctx context.Context, siteID uuid.UUID) ([]*domains.Domain, error)
}

// Validator proves or disproves each task type's real-world effect for a
// site, independent of what any task record claims. It only reads.
type Validator struct {
	contents ContentCounter
	domains  DomainLister
	logger   interfaces.Logger
}

// Option configures the validator.
type Option func(*Validator)

// WithLogger injects the diagnostics logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewValidator constructs an artifact validator.
func NewValidator(contents ContentCounter, domainRepo DomainLister, opts ...Option) *Validator {
	if contents == nil {
		panic(ErrContentRepositoryRequired)
	}
	if domainRepo == nil {
		panic(ErrDomainRepositoryRequired)
	}
	v := &Validator{
		contents: contents,
		domains:  domainRepo,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate builds the artifact report for a site. Absence of data is a
// negative verdict with a reason, never an error; only store I/O failures
// surface as errors.
func (v *Validator) Validate(ctx context.Context, site *sites.Site) (Report, error) {
	if site == nil {
		return nil, errors.New("artifacts: site is nil")
	}

	aiCount, err := v.contents.CountBySource(ctx, site.ID, content.SourceAI)
	if err != nil {
		return nil, fmt.Errorf("artifacts: counting content for site %s: %w", site.ID, err)
	}
	domainList, err := v.domains.ListBySite(ctx, site.ID)
	if err != nil {
		return nil, fmt.Errorf("artifacts: listing domains for site %s: %w", site.ID, err)
	}

	report := make(Report, len(catalog.Roadmap()))
	for _, t := range catalog.Roadmap() {
		report[t] = v.check(t, site, aiCount, domainList)
	}
	return report, nil
}

func (v *Validator) check(t catalog.Type, site *sites.Site, aiCount int, domainList []*domains.Domain) Check {
	switch t {
	case catalog.TypeContentGenerate:
		if aiCount > 0 {
			return Check{Valid: true}
		}
		return Check{Reason: "no generated content entries"}

	case catalog.TypeDomainRegister:
		if len(domainList) > 0 {
			return Check{Valid: true}
		}
		return Check{Reason: "no domain registered"}

	case catalog.TypeDomainVerify:
		if domains.AnyVerified(domainList) {
			return Check{Valid: true}
		}
		return Check{Reason: "no verified domain"}

	case catalog.TypeDNSConfigure:
		if domains.AnyWithZone(domainList) {
			return Check{Valid: true}
		}
		return Check{Reason: "no domain with a CDN zone"}

	case catalog.TypeSSLProvision:
		if domains.AnySSLEnabled(domainList) {
			return Check{Valid: true}
		}
		return Check{Reason: "no SSL-enabled domain"}

	case catalog.TypeSearchConsoleSetup:
		if site.SearchConsoleURL != nil && *site.SearchConsoleURL != "" {
			return Check{Valid: true}
		}
		return Check{Reason: "search console property not registered"}

	case catalog.TypeSearchConsoleVerify:
		if site.SearchConsoleVerifiedAt != nil {
			return Check{Valid: true}
		}
		return Check{Reason: "search console property not verified"}

	case catalog.TypeSearchConsoleSync:
		if site.SearchConsoleSyncedAt != nil {
			return Check{Valid: true}
		}
		return Check{Reason: "sitemap never synced to search console"}

	case catalog.TypeAnalyticsSetup:
		if site.AnalyticsPropertyID != nil && *site.AnalyticsPropertyID != "" {
			return Check{Valid: true}
		}
		return Check{Reason: "analytics property not configured"}

	case catalog.TypeSiteDeploy:
		if site.PrimaryDomain == nil || *site.PrimaryDomain == "" {
			return Check{Reason: "site has no primary domain"}
		}
		if !domains.AnyActive(domainList) {
			return Check{Reason: "no active domain"}
		}
		return Check{Valid: true}

	default:
		// Remaining roadmap types (content optimize/review, sitemap, post
		// launch analysis) leave no independently checkable artifact; their
		// record is the only evidence. Non-roadmap types are trivially valid.
		return Check{Valid: true}
	}
}

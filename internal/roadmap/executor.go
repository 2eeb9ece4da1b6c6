package roadmap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/artifacts"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/domains"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/logging"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/sites"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/tasks"
	"github.com/ceverett10/experience-marketplace-platform-sub000/pkg/interfaces"
)

var (
	ErrTaskRepositoryRequired   = errors.New("roadmap: task repository required")
	ErrDomainRepositoryRequired = errors.New("roadmap: domain repository required")
	ErrValidatorRequired        = errors.New("roadmap: artifact validator required")
	ErrQueueRequired            = errors.New("roadmap: queue required")
	ErrSiteRequired             = errors.New("roadmap: site required")
)

// ArtifactValidator produces the per-type artifact report for a site.
type ArtifactValidator interface {
	Validate(ctx context.Context, site *sites.Site) (artifacts.Report, error)
}

// Executor reconciles one site's task records against validated artifacts and
// enqueues whatever the roadmap says should run next.
type Executor struct {
	tasks      tasks.Repository
	domains    domains.Repository
	validator  ArtifactValidator
	queue      interfaces.Queue
	logger     interfaces.Logger
	now        func() time.Time
	staleAfter time.Duration
}

// Option configures the executor.
type Option func(*Executor)

// WithLogger sets the executor logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the staleness clock.
func WithClock(clock func() time.Time) Option {
	return func(e *Executor) {
		if clock != nil {
			e.now = clock
		}
	}
}

// WithStaleRunningAfter overrides the running-record staleness threshold.
func WithStaleRunningAfter(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.staleAfter = d
		}
	}
}

// NewExecutor wires the executor's collaborators. The queue and repositories
// are injected so the reconciliation logic stays testable without a backend.
func NewExecutor(taskRepo tasks.Repository, domainRepo domains.Repository, validator ArtifactValidator, queue interfaces.Queue, opts ...Option) *Executor {
	if taskRepo == nil {
		panic(ErrTaskRepositoryRequired)
	}
	if domainRepo == nil {
		panic(ErrDomainRepositoryRequired)
	}
	if validator == nil {
		panic(ErrValidatorRequired)
	}
	if queue == nil {
		panic(ErrQueueRequired)
	}
	e := &Executor{
		tasks:      taskRepo,
		domains:    domainRepo,
		validator:  validator,
		queue:      queue,
		logger:     logging.NoOp(),
		now:        time.Now,
		staleAfter: DefaultStaleRunningAfter,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run performs one reconciliation pass for the site. All decisions are
// derived first from a snapshot of persisted state, then applied; a crash
// between the two leaves the next pass to re-derive the same decisions.
func (e *Executor) Run(ctx context.Context, site *sites.Site, mode Mode) (*Result, error) {
	if site == nil {
		return nil, ErrSiteRequired
	}

	records, err := e.tasks.ListBySite(ctx, site.ID)
	if err != nil {
		return nil, fmt.Errorf("loading task records: %w", err)
	}
	report, err := e.validator.Validate(ctx, site)
	if err != nil {
		return nil, fmt.Errorf("validating artifacts: %w", err)
	}
	domainList, err := e.domains.ListBySite(ctx, site.ID)
	if err != nil {
		return nil, fmt.Errorf("loading domains: %w", err)
	}

	p := buildPlan(site, domainList, records, report, mode, e.now(), e.staleAfter)

	for _, d := range p.deletions {
		if err := e.tasks.DeleteByID(ctx, d.id); err != nil {
			return nil, fmt.Errorf("deleting task record %s: %w", d.id, err)
		}
		e.logger.Debug("record removed",
			"site_id", site.ID.String(),
			"record_id", d.id.String(),
			"reason", d.reason,
		)
	}

	for _, q := range p.result.Queued {
		siteID := site.ID
		if _, err := e.queue.Enqueue(ctx, interfaces.Task{
			SiteID:  &siteID,
			Type:    q.Type.String(),
			Payload: q.Payload,
		}); err != nil {
			return p.result, fmt.Errorf("enqueueing %s: %w", q.Type, err)
		}
	}

	e.logger.Info("pass finished",
		"site_id", site.ID.String(),
		"mode", mode.String(),
		"summary", p.result.Summary(),
	)
	return p.result, nil
}

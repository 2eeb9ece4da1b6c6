package autopilot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/logging"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/roadmap"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/sites"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/tasks"
	"github.com/ceverett10/experience-marketplace-platform-sub000/pkg/interfaces"
)

// LockResource is the lease name all orchestrator instances contend on.
// One name, one logical pass over the whole site population.
const LockResource = "orchestrator:autopilot"

const (
	DefaultInterval = 5 * time.Minute
	// DefaultLockTTL must stay below the interval so a crashed holder's lease
	// expires before the next scheduled pass.
	DefaultLockTTL = 4 * time.Minute
)

var (
	ErrSiteRepositoryRequired = errors.New("autopilot: site repository required")
	ErrTaskRepositoryRequired = errors.New("autopilot: task repository required")
	ErrExecutorRequired       = errors.New("autopilot: executor required")
	ErrLockerRequired         = errors.New("autopilot: locker required")
	ErrTTLExceedsInterval     = errors.New("autopilot: lock ttl must be shorter than the interval")
)

// SiteError is one site's failure during a sweep. Collected, never raised:
// a single bad site must not starve the rest of the population.
type SiteError struct {
	SiteID uuid.UUID `json:"site_id"`
	Err    string    `json:"error"`
}

// Sweep aggregates one full pass over every in-scope site.
type Sweep struct {
	Acquired       bool        `json:"acquired"`
	Sites          int         `json:"sites"`
	Queued         int         `json:"queued"`
	Blocked        int         `json:"blocked"`
	Requeued       int         `json:"requeued"`
	OrphansRemoved int         `json:"orphans_removed"`
	Errors         []SiteError `json:"errors,omitempty"`
}

// Summary renders the sweep as a single log line.
func (s *Sweep) Summary() string {
	if !s.Acquired {
		return "lock held elsewhere, skipped"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "sites=%d queued=%d blocked=%d requeued=%d orphans_removed=%d", s.Sites, s.Queued, s.Blocked, s.Requeued, s.OrphansRemoved)
	if len(s.Errors) > 0 {
		fmt.Fprintf(&sb, " errors=%d", len(s.Errors))
	}
	return sb.String()
}

// Runner drives the executor over the whole site population on a cadence,
// guarded by a leased lock so only one instance acts at a time.
type Runner struct {
	sites    sites.Repository
	tasks    tasks.Repository
	executor *roadmap.Executor
	locker   interfaces.Locker
	logger   interfaces.Logger
	interval time.Duration
	lockTTL  time.Duration
	resource string
}

// Option configures the runner.
type Option func(*Runner)

// WithLogger sets the runner logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithInterval sets the sweep cadence.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithLockTTL sets the lease TTL.
func WithLockTTL(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.lockTTL = d
		}
	}
}

// WithResource overrides the lease resource name, used to isolate tests.
func WithResource(resource string) Option {
	return func(r *Runner) {
		if resource != "" {
			r.resource = resource
		}
	}
}

// NewRunner wires the scheduler loop.
func NewRunner(siteRepo sites.Repository, taskRepo tasks.Repository, executor *roadmap.Executor, locker interfaces.Locker, opts ...Option) *Runner {
	if siteRepo == nil {
		panic(ErrSiteRepositoryRequired)
	}
	if taskRepo == nil {
		panic(ErrTaskRepositoryRequired)
	}
	if executor == nil {
		panic(ErrExecutorRequired)
	}
	if locker == nil {
		panic(ErrLockerRequired)
	}
	r := &Runner{
		sites:    siteRepo,
		tasks:    taskRepo,
		executor: executor,
		locker:   locker,
		logger:   logging.NoOp(),
		interval: DefaultInterval,
		lockTTL:  DefaultLockTTL,
		resource: LockResource,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunOnce performs a single sweep. Failing to take the lease is a normal
// outcome, not an error: another instance is already doing the work.
func (r *Runner) RunOnce(ctx context.Context) (*Sweep, error) {
	release, err := r.locker.TryAcquire(ctx, r.resource, r.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquiring lease: %w", err)
	}
	if release == nil {
		return &Sweep{}, nil
	}
	defer func() {
		if err := release(ctx); err != nil {
			r.logger.Warn("lease release failed", "error", err)
		}
	}()

	sweep := &Sweep{Acquired: true}

	removed, err := r.cleanupOrphanedPlaceholders(ctx)
	if err != nil {
		r.logger.Warn("orphan cleanup failed", "error", err)
	}
	sweep.OrphansRemoved = removed

	population, err := r.sites.ListAutomatable(ctx)
	if err != nil {
		return sweep, fmt.Errorf("listing automatable sites: %w", err)
	}

	for _, site := range population {
		result, err := r.executor.Run(ctx, site, roadmap.ModeAutonomous)
		if err != nil {
			sweep.Errors = append(sweep.Errors, SiteError{SiteID: site.ID, Err: err.Error()})
			r.logger.Error("site pass failed", "site_id", site.ID.String(), "error", err)
			continue
		}
		sweep.Sites++
		sweep.Queued += len(result.Queued)
		sweep.Blocked += len(result.Blocked)
		sweep.Requeued += len(result.Requeued)
	}

	r.logger.Info("sweep finished", "summary", sweep.Summary())
	return sweep, nil
}

// Start blocks, sweeping on the configured cadence until the context ends.
func (r *Runner) Start(ctx context.Context) error {
	if r.lockTTL >= r.interval {
		return ErrTTLExceedsInterval
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil {
				r.logger.Error("sweep failed", "error", err)
			}
		}
	}
}

// cleanupOrphanedPlaceholders removes planned-lane records whose site has
// left orchestrator scope. Such records would otherwise linger forever since
// their site is never swept again.
func (r *Runner) cleanupOrphanedPlaceholders(ctx context.Context) (int, error) {
	placeholders, err := r.tasks.ListPlaceholders(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, record := range placeholders {
		orphaned := false
		if record.SiteID == nil {
			orphaned = true
		} else {
			site, err := r.sites.GetByID(ctx, *record.SiteID)
			switch {
			case sites.IsNotFound(err):
				orphaned = true
			case err != nil:
				return removed, err
			default:
				orphaned = !site.InScope()
			}
		}
		if !orphaned {
			continue
		}
		if err := r.tasks.DeleteByID(ctx, record.ID); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

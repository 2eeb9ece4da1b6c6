package orchestrator

import (
	"context"

	"github.com/google/uuid"

	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/artifacts"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/autopilot"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/di"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/roadmap"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/sites"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/tasks"
)

// SiteService exports the site service contract for consumers of the module.
type SiteService = sites.Service

// CreateSiteInput exports the site creation request.
type CreateSiteInput = sites.CreateSiteInput

// ExecutorMode exports the executor mode selector.
type ExecutorMode = roadmap.Mode

// Executor modes re-exported for callers.
const (
	ModeAutonomous = roadmap.ModeAutonomous
	ModeManual     = roadmap.ModeManual
)

// Result exports one executor pass outcome.
type Result = roadmap.Result

// TaskView exports one row of the operator overview.
type TaskView = roadmap.TaskView

// Sweep exports one scheduler sweep outcome.
type Sweep = autopilot.Sweep

// ArtifactReport exports the per-type artifact verdicts.
type ArtifactReport = artifacts.Report

// Module is the top level orchestrator runtime façade.
type Module struct {
	container *di.Container
}

// New constructs an orchestrator module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Sites returns the configured site service.
func (m *Module) Sites() SiteService {
	return m.container.Sites()
}

// Executor returns the roadmap executor.
func (m *Module) Executor() *roadmap.Executor {
	return m.container.Executor()
}

// Runner returns the autonomous scheduler loop.
func (m *Module) Runner() *autopilot.Runner {
	return m.container.Runner()
}

// Validator returns the artifact validator.
func (m *Module) Validator() *artifacts.Validator {
	return m.container.Validator()
}

// EnsurePlan seeds the planned-lane placeholders for a site's roadmap. Safe
// to call repeatedly; placeholder IDs are deterministic per (site, type).
func (m *Module) EnsurePlan(ctx context.Context, siteID uuid.UUID) (int, error) {
	created, err := tasks.EnsurePlan(ctx, m.container.TaskRepository(), siteID, m.container.Now())
	return len(created), err
}

package di

import (
	"time"

	"github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/artifacts"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/autopilot"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/catalog"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/content"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/domains"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/locks"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/logging"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/queue"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/roadmap"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/runtimeconfig"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/sites"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/tasks"
	"github.com/ceverett10/experience-marketplace-platform-sub000/pkg/interfaces"
)

// Container wires the orchestrator's dependencies. Without a database every
// repository falls back to its in-memory implementation, which keeps the
// module usable in tests and demos.
type Container struct {
	Config runtimeconfig.Config

	bunDB          *bun.DB
	loggerProvider interfaces.LoggerProvider
	clock          func() time.Time

	cacheService  cache.CacheService
	keySerializer cache.KeySerializer

	siteRepo    sites.Repository
	domainRepo  domains.Repository
	taskRepo    tasks.Repository
	contentRepo content.Repository

	queue  interfaces.Queue
	locker interfaces.Locker

	siteSvc   sites.Service
	validator *artifacts.Validator
	executor  *roadmap.Executor
	runner    *autopilot.Runner
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds the shared database. Repositories and the lease locker are
// built on it unless individually overridden.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithLoggerProvider overrides the default no-op logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithCache enables repository-level caching for site reads.
func WithCache(service cache.CacheService, serializer cache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithQueue overrides the queue implementation.
func WithQueue(q interfaces.Queue) Option {
	return func(c *Container) {
		c.queue = q
	}
}

// WithLocker overrides the lease locker.
func WithLocker(l interfaces.Locker) Option {
	return func(c *Container) {
		c.locker = l
	}
}

// WithClock overrides the time source everywhere, used in tests.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithSiteRepository overrides the site repository.
func WithSiteRepository(repo sites.Repository) Option {
	return func(c *Container) {
		c.siteRepo = repo
	}
}

// WithDomainRepository overrides the domain repository.
func WithDomainRepository(repo domains.Repository) Option {
	return func(c *Container) {
		c.domainRepo = repo
	}
}

// WithTaskRepository overrides the task repository.
func WithTaskRepository(repo tasks.Repository) Option {
	return func(c *Container) {
		c.taskRepo = repo
	}
}

// WithContentRepository overrides the content repository.
func WithContentRepository(repo content.Repository) Option {
	return func(c *Container) {
		c.contentRepo = repo
	}
}

// NewContainer validates the configuration, checks the task catalog for
// consistency, and wires every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// An accidental dependency cycle would silently deadlock every site.
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.siteRepo == nil {
		if c.bunDB != nil {
			c.siteRepo = sites.NewBunSiteRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		} else {
			c.siteRepo = sites.NewMemoryRepository()
		}
	}
	if c.domainRepo == nil {
		if c.bunDB != nil {
			c.domainRepo = domains.NewBunDomainRepository(c.bunDB)
		} else {
			c.domainRepo = domains.NewMemoryRepository()
		}
	}
	if c.taskRepo == nil {
		if c.bunDB != nil {
			c.taskRepo = tasks.NewBunTaskRepository(c.bunDB)
		} else {
			c.taskRepo = tasks.NewMemoryRepository()
		}
	}
	if c.contentRepo == nil {
		if c.bunDB != nil {
			c.contentRepo = content.NewBunEntryRepository(c.bunDB)
		} else {
			c.contentRepo = content.NewMemoryRepository()
		}
	}

	if c.queue == nil {
		c.queue = queue.NewStore(c.taskRepo, queue.WithStoreClock(c.clock))
	}
	if c.locker == nil {
		if c.bunDB != nil {
			c.locker = locks.NewBunLocker(c.bunDB, cfg.Scheduler.Instance, locks.WithBunClock(c.clock))
		} else {
			c.locker = locks.NewMemoryLocker(locks.WithClock(c.clock))
		}
	}

	c.siteSvc = sites.NewService(c.siteRepo, sites.WithNow(c.clock))
	c.validator = artifacts.NewValidator(c.contentRepo, c.domainRepo,
		artifacts.WithLogger(logging.ArtifactsLogger(c.loggerProvider)),
	)
	c.executor = roadmap.NewExecutor(c.taskRepo, c.domainRepo, c.validator, c.queue,
		roadmap.WithLogger(logging.RoadmapLogger(c.loggerProvider)),
		roadmap.WithClock(c.clock),
		roadmap.WithStaleRunningAfter(cfg.Scheduler.StaleRunningAfter),
	)
	c.runner = autopilot.NewRunner(c.siteRepo, c.taskRepo, c.executor, c.locker,
		autopilot.WithLogger(logging.AutopilotLogger(c.loggerProvider)),
		autopilot.WithInterval(cfg.Scheduler.Interval),
		autopilot.WithLockTTL(cfg.Scheduler.LockTTL),
	)

	return c, nil
}

// Sites returns the site service.
func (c *Container) Sites() sites.Service { return c.siteSvc }

// Validator returns the artifact validator.
func (c *Container) Validator() *artifacts.Validator { return c.validator }

// Executor returns the roadmap executor.
func (c *Container) Executor() *roadmap.Executor { return c.executor }

// Runner returns the autonomous scheduler loop.
func (c *Container) Runner() *autopilot.Runner { return c.runner }

// Queue returns the configured queue boundary.
func (c *Container) Queue() interfaces.Queue { return c.queue }

// Locker returns the configured lease locker.
func (c *Container) Locker() interfaces.Locker { return c.locker }

// SiteRepository returns the site repository.
func (c *Container) SiteRepository() sites.Repository { return c.siteRepo }

// DomainRepository returns the domain repository.
func (c *Container) DomainRepository() domains.Repository { return c.domainRepo }

// TaskRepository returns the task repository.
func (c *Container) TaskRepository() tasks.Repository { return c.taskRepo }

// ContentRepository returns the content repository.
func (c *Container) ContentRepository() content.Repository { return c.contentRepo }

// Now returns the container's time source.
func (c *Container) Now() time.Time { return c.clock() }

// BunDB returns the bound database, nil when running on memory stores.
func (c *Container) BunDB() *bun.DB { return c.bunDB }

// LoggerProvider returns the configured logger provider, possibly nil.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

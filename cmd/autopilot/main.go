package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	orchestrator "github.com/ceverett10/experience-marketplace-platform-sub000"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/di"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/logging/gologger"
)

func main() {
	cfg := orchestrator.DefaultConfig()

	var createSchema bool
	flag.StringVar(&cfg.Database.Driver, "driver", envOr("ORCHESTRATOR_DB_DRIVER", cfg.Database.Driver), "database driver (sqlite|postgres)")
	flag.StringVar(&cfg.Database.DSN, "dsn", envOr("ORCHESTRATOR_DB_DSN", cfg.Database.DSN), "database dsn")
	flag.StringVar(&cfg.Scheduler.Instance, "instance", envOr("ORCHESTRATOR_INSTANCE", cfg.Scheduler.Instance), "instance name for lease identity")
	flag.DurationVar(&cfg.Scheduler.Interval, "interval", cfg.Scheduler.Interval, "sweep interval")
	flag.DurationVar(&cfg.Scheduler.LockTTL, "lock-ttl", cfg.Scheduler.LockTTL, "lease ttl, must be shorter than the interval")
	flag.DurationVar(&cfg.Scheduler.StaleRunningAfter, "stale-after", cfg.Scheduler.StaleRunningAfter, "running-record staleness threshold")
	flag.StringVar(&cfg.Logging.Level, "log-level", envOr("ORCHESTRATOR_LOG_LEVEL", cfg.Logging.Level), "log level")
	flag.StringVar(&cfg.Logging.Format, "log-format", envOr("ORCHESTRATOR_LOG_FORMAT", cfg.Logging.Format), "log format (text|json)")
	flag.BoolVar(&createSchema, "create-schema", false, "create tables before starting")
	flag.Parse()

	bunDB, err := openDatabase(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer bunDB.Close()

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    logFormat(cfg.Logging.Format),
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		log.Fatalf("initialise logging: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if createSchema {
		if err := orchestrator.CreateSchema(ctx, bunDB); err != nil {
			log.Fatalf("create schema: %v", err)
		}
	}

	module, err := orchestrator.New(cfg,
		di.WithBunDB(bunDB),
		di.WithLoggerProvider(provider),
	)
	if err != nil {
		log.Fatalf("initialise orchestrator: %v", err)
	}

	logger := provider.GetLogger("orchestrator.autopilot")
	logger.Info("autopilot starting",
		"driver", cfg.Database.Driver,
		"interval", cfg.Scheduler.Interval.String(),
		"lock_ttl", cfg.Scheduler.LockTTL.String(),
	)

	// One immediate sweep, then the ticker loop until shutdown.
	if sweep, err := module.Runner().RunOnce(ctx); err != nil {
		logger.Error("initial sweep failed", "error", err)
	} else {
		logger.Info("initial sweep", "summary", sweep.Summary())
	}

	if err := module.Runner().Start(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("scheduler loop: %v", err)
	}
	logger.Info("autopilot stopped")
}

func openDatabase(driver, dsn string) (*bun.DB, error) {
	switch strings.TrimSpace(driver) {
	case "sqlite":
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, err
		}
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		db.SetMaxOpenConns(1)
		return db, nil
	case "postgres":
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, err
		}
		sqlDB.SetConnMaxIdleTime(time.Minute)
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

func logFormat(format string) string {
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		return "console"
	}
	return format
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package runtimeconfig

import (
	"errors"
	"strings"
	"time"
)

var ErrDatabaseDriverUnknown = errors.New("orchestrator config: database driver is invalid")
var ErrDatabaseDSNRequired = errors.New("orchestrator config: database dsn is required")
var ErrSchedulerIntervalInvalid = errors.New("orchestrator config: scheduler interval must be positive")
var ErrSchedulerLockTTLInvalid = errors.New("orchestrator config: scheduler lock ttl must be positive")
var ErrSchedulerLockTTLTooLong = errors.New("orchestrator config: scheduler lock ttl must be shorter than the interval")
var ErrSchedulerStaleThresholdInvalid = errors.New("orchestrator config: stale running threshold must be positive")
var ErrLoggingLevelInvalid = errors.New("orchestrator config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("orchestrator config: logging format is invalid")

// Config aggregates the orchestrator module's runtime settings. Fields use
// simple types so host applications can bind them from any source.
type Config struct {
	Database  DatabaseConfig
	Scheduler SchedulerConfig
	Logging   LoggingConfig
}

// DatabaseConfig selects the backing store. Sqlite serves development and
// tests; postgres is the production target.
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// SchedulerConfig tunes the autonomous loop.
type SchedulerConfig struct {
	// Instance names this process for lease-holder identity.
	Instance          string
	Interval          time.Duration
	LockTTL           time.Duration
	StaleRunningAfter time.Duration
}

// LoggingConfig mirrors the go-logger options the module forwards.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

var validDrivers = map[string]bool{
	"sqlite":   true,
	"postgres": true,
}

var validLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validFormats = map[string]bool{
	"text": true,
	"json": true,
}

// DefaultConfig returns settings suitable for local development.
func DefaultConfig() Config {
	return Config{
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "file::memory:?cache=shared",
		},
		Scheduler: SchedulerConfig{
			Instance:          "orchestrator-local",
			Interval:          5 * time.Minute,
			LockTTL:           4 * time.Minute,
			StaleRunningAfter: 2 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if !validDrivers[strings.TrimSpace(cfg.Database.Driver)] {
		return ErrDatabaseDriverUnknown
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return ErrDatabaseDSNRequired
	}
	if cfg.Scheduler.Interval <= 0 {
		return ErrSchedulerIntervalInvalid
	}
	if cfg.Scheduler.LockTTL <= 0 {
		return ErrSchedulerLockTTLInvalid
	}
	if cfg.Scheduler.LockTTL >= cfg.Scheduler.Interval {
		return ErrSchedulerLockTTLTooLong
	}
	if cfg.Scheduler.StaleRunningAfter <= 0 {
		return ErrSchedulerStaleThresholdInvalid
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !validLevels[strings.ToLower(level)] {
		return ErrLoggingLevelInvalid
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !validFormats[strings.ToLower(format)] {
		return ErrLoggingFormatInvalid
	}
	return nil
}

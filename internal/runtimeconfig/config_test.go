package runtimeconfig

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejectsBadSettings(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, ErrDatabaseDriverUnknown},
		{"missing dsn", func(c *Config) { c.Database.DSN = " " }, ErrDatabaseDSNRequired},
		{"zero interval", func(c *Config) { c.Scheduler.Interval = 0 }, ErrSchedulerIntervalInvalid},
		{"zero lock ttl", func(c *Config) { c.Scheduler.LockTTL = 0 }, ErrSchedulerLockTTLInvalid},
		{"ttl not below interval", func(c *Config) { c.Scheduler.LockTTL = c.Scheduler.Interval }, ErrSchedulerLockTTLTooLong},
		{"zero stale threshold", func(c *Config) { c.Scheduler.StaleRunningAfter = 0 }, ErrSchedulerStaleThresholdInvalid},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, ErrLoggingLevelInvalid},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, ErrLoggingFormatInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestValidateAcceptsTightSchedule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scheduler.Interval = time.Minute
	cfg.Scheduler.LockTTL = 45 * time.Second
	if err := cfg.Validate(); err != nil {
		t.Fatalf("tight schedule rejected: %v", err)
	}
}

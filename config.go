package orchestrator

import "github.com/ceverett10/experience-marketplace-platform-sub000/internal/runtimeconfig"

var (
	ErrDatabaseDriverUnknown          = runtimeconfig.ErrDatabaseDriverUnknown
	ErrDatabaseDSNRequired            = runtimeconfig.ErrDatabaseDSNRequired
	ErrSchedulerIntervalInvalid       = runtimeconfig.ErrSchedulerIntervalInvalid
	ErrSchedulerLockTTLInvalid        = runtimeconfig.ErrSchedulerLockTTLInvalid
	ErrSchedulerLockTTLTooLong        = runtimeconfig.ErrSchedulerLockTTLTooLong
	ErrSchedulerStaleThresholdInvalid = runtimeconfig.ErrSchedulerStaleThresholdInvalid
	ErrLoggingLevelInvalid            = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid           = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	DatabaseConfig  = runtimeconfig.DatabaseConfig
	SchedulerConfig = runtimeconfig.SchedulerConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

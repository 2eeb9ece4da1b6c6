package logging

import (
	"context"
	"maps"

	"github.com/ceverett10/experience-marketplace-platform-sub000/pkg/interfaces"
)

const (
	rootModule      = "orchestrator"
	roadmapModule   = "orchestrator.roadmap"
	autopilotModule = "orchestrator.autopilot"
	artifactsModule = "orchestrator.artifacts"
	commandsModule  = "orchestrator.commands"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// RoadmapLogger returns the logger namespace reserved for the roadmap executor.
func RoadmapLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, roadmapModule)
}

// AutopilotLogger returns the logger namespace reserved for the scheduler loop.
func AutopilotLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, autopilotModule)
}

// ArtifactsLogger returns the logger namespace reserved for artifact validation.
func ArtifactsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, artifactsModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Callers can pass nil or an
// empty map to skip allocation safely.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}

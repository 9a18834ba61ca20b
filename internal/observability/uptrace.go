// Package observability wires the optional telemetry backends: Uptrace for
// traces, Pyroscope for continuous profiles, and an on-demand pprof server.
package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/Porizovatel/kulda/internal/config"
	"github.com/Porizovatel/kulda/internal/platform/logging"
)

// InitUptrace installs the global OpenTelemetry providers backed by Uptrace
// and returns the shutdown hook. With tracing disabled it returns a no-op.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	noop := func(context.Context) error { return nil }
	switch {
	case !cfg.UptraceEnabled:
		logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return noop, nil
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return noop, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
		"logs_enabled", cfg.UptraceLogsEnabled,
	)

	return uptrace.Shutdown, nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-records/recordstore/oteladapters"
	"github.com/AntonStoeckl/library-records/recordstore/postgresengine"
	"github.com/AntonStoeckl/library-records/shell/config"
	"github.com/AntonStoeckl/library-records/shell/observable"
)

const serviceName = "library-records"

// telemetry carries the logging, metrics and tracing options for the store and the handler wrappers.
type telemetry struct {
	storeOptions   []postgresengine.Option
	wrapperOptions []observable.Option
	shutdown       func()
}

// newTelemetry always logs to logger. With observability enabled it also installs
// OTLP exporting providers and adds metrics and tracing.
func newTelemetry(ctx context.Context, cfg Config, logger *slog.Logger) (telemetry, error) {
	if !cfg.ObservabilityEnabled {
		return telemetry{
			storeOptions:   []postgresengine.Option{postgresengine.WithLogger(logger)},
			wrapperOptions: []observable.Option{observable.WithLogging(logger)},
			shutdown:       func() {},
		}, nil
	}

	providers, err := config.NewObservabilityProviders(ctx, serviceName, serviceVersion(), cfg.OTLPEndpoint)
	if err != nil {
		return telemetry{}, fmt.Errorf("observability providers: %w", err)
	}

	metricsCollector := oteladapters.NewMetricsCollector(otel.Meter(serviceName))
	tracingCollector := oteladapters.NewTracingCollector(otel.Tracer(serviceName))
	contextualLogger := oteladapters.NewSlogBridgeLoggerWithHandler(logger.Handler())

	logger.Info("observability enabled", "endpoint", cfg.OTLPEndpoint)

	return telemetry{
		storeOptions: []postgresengine.Option{
			postgresengine.WithContextualLogger(contextualLogger),
			postgresengine.WithMetrics(metricsCollector),
			postgresengine.WithTracing(tracingCollector),
		},
		wrapperOptions: []observable.Option{
			observable.WithContextualLogging(contextualLogger),
			observable.WithMetrics(metricsCollector),
			observable.WithTracing(tracingCollector),
		},
		shutdown: func() {
			if shutdownErr := providers.Shutdown(); shutdownErr != nil {
				logger.Error("observability shutdown failed", "error", shutdownErr)
			}
		},
	}, nil
}

func serviceVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "devel"
}

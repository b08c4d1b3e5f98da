// Package testdoubles provides spies for the observability ports of the record store and the shell:
//   - MetricsCollectorSpy: captures duration, counter and value recordings
//   - TracingCollectorSpy: captures started and finished spans
//   - ContextualLoggerSpy: captures context-aware log calls per level
//   - LogHandlerSpy: a slog.Handler that captures records for loggers built with slog.New
//
// They let tests assert on instrumentation without a telemetry backend.
package testdoubles

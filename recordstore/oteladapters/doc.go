// Package oteladapters implements the recordstore observability ports with OpenTelemetry.
//
// The command handlers in the shell and the PostgreSQL record store only know the small
// Logger, ContextualLogger, MetricsCollector and TracingCollector interfaces.
// Wiring these adapters in gives trace-correlated logs, OTel metrics and spans without
// either side importing the OpenTelemetry API.
package oteladapters

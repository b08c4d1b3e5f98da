// Package config builds the database handles and OpenTelemetry providers used by cmd/library
// and by the integration tests. Connection strings come from environment variables.
package config

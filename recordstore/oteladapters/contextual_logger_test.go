package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/log/noop"

	"github.com/AntonStoeckl/library-records/recordstore/oteladapters"
)

func Test_SlogBridgeLogger_WithHandler_WritesAllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "executed sql for: lend_book", "duration_ms", 1.5)
	logger.InfoContext(ctx, "recordstore operation: lend_book completed", "row_count", 1)
	logger.WarnContext(ctx, "failed to close database rows")
	logger.ErrorContext(ctx, "database statement execution failed", "error", "boom")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG"`)
	assert.Contains(t, output, `"level":"INFO"`)
	assert.Contains(t, output, `"level":"WARN"`)
	assert.Contains(t, output, `"level":"ERROR"`)
	assert.Contains(t, output, `"row_count":1`)
	assert.Contains(t, output, `"error":"boom"`)
}

func Test_NewSlogBridgeLogger_UsesGlobalProvider(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("library-records")

	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "started")
	})
}

func Test_OTelLogger_EmitsWithoutPanicking(t *testing.T) {
	// arrange
	logger := oteladapters.NewOTelLogger(noop.NewLoggerProvider().Logger("test"))
	ctx := context.Background()

	// act + assert
	assert.NotPanics(t, func() {
		logger.DebugContext(ctx, "debug", "count", 3)
		logger.InfoContext(ctx, "info", "ok", true)
		logger.WarnContext(ctx, "warn", "ratio", 0.5)
		logger.ErrorContext(ctx, "error", "dangling")
	})
}

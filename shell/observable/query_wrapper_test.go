package observable_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records/shell"
	"github.com/AntonStoeckl/library-records/shell/observable"
	"github.com/AntonStoeckl/library-records/testutil/observability/testdoubles"
)

type mockQuery struct{}

func (mockQuery) QueryType() string {
	return "TestQuery"
}

type mockQueryResult struct {
	Rows []string
}

func (r mockQueryResult) Len() int {
	return len(r.Rows)
}

type mockQueryHandler struct {
	result mockQueryResult
	err    error
}

func (h mockQueryHandler) Handle(_ context.Context, _ mockQuery) (mockQueryResult, error) {
	return h.result, h.err
}

func newSlogLogger(handler slog.Handler) *slog.Logger {
	return slog.New(handler)
}

func Test_QueryWrapper_Handle_Success(t *testing.T) {
	// arrange
	metrics := testdoubles.NewMetricsCollectorSpy(true)
	tracing := testdoubles.NewTracingCollectorSpy(true)
	logger := testdoubles.NewContextualLoggerSpy(true)
	wrapper, err := observable.NewQueryWrapper[mockQuery, mockQueryResult](
		mockQueryHandler{result: mockQueryResult{Rows: []string{"a", "b"}}},
		observable.WithMetrics(metrics),
		observable.WithTracing(tracing),
		observable.WithContextualLogging(logger),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(t.Context(), mockQuery{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Len())
	assert.True(t, metrics.HasCounterRecordForMetric(shell.QueryHandlerCallsMetric).
		WithLabel(shell.LogAttrQueryType, "TestQuery").
		WithStatus(shell.StatusSuccess).
		Assert())
	assert.True(t, tracing.HasSpanRecordForName(shell.SpanNameQueryHandle).WithStatus(shell.StatusSuccess).Assert())
	assert.True(t, logger.HasDebugLog(shell.LogMsgQueryStarted))
	assert.True(t, logger.HasLogWithArg(shell.LogMsgQueryCompleted, shell.LogAttrResultCount, 2))
}

func Test_QueryWrapper_Handle_Error(t *testing.T) {
	// arrange
	boom := errors.New("relation does not exist")
	metrics := testdoubles.NewMetricsCollectorSpy(true)
	logger := testdoubles.NewContextualLoggerSpy(true)
	wrapper, err := observable.NewQueryWrapper[mockQuery, mockQueryResult](
		mockQueryHandler{err: boom},
		observable.WithMetrics(metrics),
		observable.WithContextualLogging(logger),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(t.Context(), mockQuery{})

	// assert
	assert.ErrorIs(t, err, boom)
	assert.True(t, metrics.HasCounterRecordForMetric(shell.QueryHandlerCallsMetric).WithStatus(shell.StatusError).Assert())
	assert.True(t, logger.HasErrorLog(shell.LogMsgQueryFailed))
}

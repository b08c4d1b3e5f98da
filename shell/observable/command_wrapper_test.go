package observable_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records/core"
	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/shell"
	"github.com/AntonStoeckl/library-records/shell/observable"
	"github.com/AntonStoeckl/library-records/testutil/observability/testdoubles"
)

type mockCommand struct {
	Value string
}

func (mockCommand) CommandType() string {
	return "TestCommand"
}

type mockResult struct {
	shell.HandlerResult
	Value string
}

type mockCommandHandler struct {
	result mockResult
	err    error
	calls  []mockCommand
	ctxs   []context.Context
}

func (h *mockCommandHandler) Handle(ctx context.Context, command mockCommand) (mockResult, error) {
	h.calls = append(h.calls, command)
	h.ctxs = append(h.ctxs, ctx)

	return h.result, h.err
}

func newCommandWrapper(
	t *testing.T,
	handler *mockCommandHandler,
) (*observable.CommandWrapper[mockCommand, mockResult], *testdoubles.MetricsCollectorSpy, *testdoubles.TracingCollectorSpy, *testdoubles.ContextualLoggerSpy) {

	t.Helper()

	metrics := testdoubles.NewMetricsCollectorSpy(true)
	tracing := testdoubles.NewTracingCollectorSpy(true)
	logger := testdoubles.NewContextualLoggerSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand, mockResult](
		handler,
		observable.WithMetrics(metrics),
		observable.WithTracing(tracing),
		observable.WithContextualLogging(logger),
	)
	require.NoError(t, err)

	return wrapper, metrics, tracing, logger
}

func Test_CommandWrapper_Handle_Success(t *testing.T) {
	// arrange
	handler := &mockCommandHandler{result: mockResult{HandlerResult: shell.HandlerResult{RetryAttempts: 1}, Value: "done"}}
	wrapper, metrics, tracing, logger := newCommandWrapper(t, handler)
	command := mockCommand{Value: "x"}

	// act
	result, err := wrapper.Handle(t.Context(), command)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "done", result.Value)
	require.Len(t, handler.calls, 1)
	assert.Equal(t, command, handler.calls[0])

	_, hasCorrelation := shell.CorrelationIDFrom(handler.ctxs[0])
	assert.True(t, hasCorrelation, "handler should receive a correlation id")

	assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
		WithLabel(shell.LogAttrCommandType, "TestCommand").
		WithStatus(shell.StatusSuccess).
		Assert())
	assert.True(t, metrics.HasDurationRecordForMetric(shell.CommandHandlerDurationMetric).WithStatus(shell.StatusSuccess).Assert())
	assert.Equal(t, 0, metrics.CountCounterRecordsForMetric(shell.CommandHandlerRetriesMetric))

	assert.True(t, tracing.HasSpanRecordForName(shell.SpanNameCommandHandle).
		WithStartAttribute(shell.LogAttrCommandType, "TestCommand").
		WithStatus(shell.StatusSuccess).
		Assert())

	assert.True(t, logger.HasInfoLog(shell.LogMsgCommandStarted))
	assert.True(t, logger.HasInfoLog(shell.LogMsgCommandCompleted))
	assert.False(t, logger.HasErrorLog(shell.LogMsgCommandFailed))
}

func Test_CommandWrapper_Handle_KeepsCallerCorrelationID(t *testing.T) {
	// arrange
	handler := &mockCommandHandler{}
	wrapper, _, tracing, _ := newCommandWrapper(t, handler)
	ctx, id := shell.EnsureCorrelationID(t.Context())

	// act
	_, err := wrapper.Handle(ctx, mockCommand{})

	// assert
	require.NoError(t, err)
	got, _ := shell.CorrelationIDFrom(handler.ctxs[0])
	assert.Equal(t, id, got)
	assert.True(t, tracing.HasSpanRecordForName(shell.SpanNameCommandHandle).
		WithStartAttribute(shell.LogAttrCorrelationID, id.String()).
		Assert())
}

func Test_CommandWrapper_Handle_BusinessRuleViolation_IsRejected(t *testing.T) {
	// arrange
	handler := &mockCommandHandler{err: core.ErrAlreadyLoaned}
	wrapper, metrics, tracing, logger := newCommandWrapper(t, handler)

	// act
	_, err := wrapper.Handle(t.Context(), mockCommand{})

	// assert
	assert.ErrorIs(t, err, core.ErrAlreadyLoaned)
	assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerRejectedMetric).
		WithLabel(shell.LogAttrErrorKind, string(core.KindInvalidState)).
		Assert())
	assert.True(t, tracing.HasSpanRecordForName(shell.SpanNameCommandHandle).WithStatus(shell.StatusRejected).Assert())
	assert.True(t, logger.HasInfoLog(shell.LogMsgCommandRejected))
	assert.False(t, logger.HasErrorLog(shell.LogMsgCommandFailed))
}

func Test_CommandWrapper_Handle_ErrorClassification(t *testing.T) {
	testCases := []struct {
		name          string
		err           error
		status        string
		counterMetric string
	}{
		{"canceled", context.Canceled, shell.StatusCanceled, shell.CommandHandlerCanceledMetric},
		{"timeout", context.DeadlineExceeded, shell.StatusTimeout, shell.CommandHandlerTimeoutMetric},
		{"conflict", recordstore.ErrConcurrencyConflict, shell.StatusConcurrencyConflict, shell.CommandHandlerConcurrencyConflictMetric},
		{"infrastructure", errors.New("connection reset"), shell.StatusError, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			handler := &mockCommandHandler{err: tc.err}
			wrapper, metrics, tracing, logger := newCommandWrapper(t, handler)

			// act
			_, err := wrapper.Handle(t.Context(), mockCommand{})

			// assert
			assert.ErrorIs(t, err, tc.err)
			assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).WithStatus(tc.status).Assert())
			if tc.counterMetric != "" {
				assert.Equal(t, 1, metrics.CountCounterRecordsForMetric(tc.counterMetric))
			}
			assert.True(t, tracing.HasSpanRecordForName(shell.SpanNameCommandHandle).WithStatus(tc.status).Assert())
			assert.True(t, logger.HasLogWithArg(shell.LogMsgCommandFailed, shell.LogAttrStatus, tc.status))
		})
	}
}

func Test_CommandWrapper_Handle_RecordsRetryMetadata(t *testing.T) {
	// arrange
	handler := &mockCommandHandler{
		result: mockResult{HandlerResult: shell.HandlerResult{
			RetryAttempts:    6,
			TotalRetryDelay:  310 * time.Millisecond,
			LastErrorType:    "concurrency_conflict",
			RetriesExhausted: true,
		}},
		err: recordstore.ErrConcurrencyConflict,
	}
	wrapper, metrics, _, _ := newCommandWrapper(t, handler)

	// act
	_, _ = wrapper.Handle(t.Context(), mockCommand{})

	// assert
	assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerRetriesMetric).
		WithLabel("attempt_number", "5").
		WithErrorType("concurrency_conflict").
		Assert())
	assert.True(t, metrics.HasDurationRecordForMetric(shell.CommandHandlerRetryDelayMetric).Assert())
	assert.Equal(t, 1, metrics.CountCounterRecordsForMetric(shell.CommandHandlerRetriesMetric))
	assert.Equal(t, 1, metrics.CountDurationRecordsForMetric(shell.CommandHandlerRetryDelayMetric))
	assert.Equal(t, 1, metrics.CountCounterRecordsForMetric(shell.CommandHandlerMaxRetriesReachedMetric))
	assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerMaxRetriesReachedMetric).
		WithLabel(shell.LogAttrCommandType, "TestCommand").
		WithLabel("final_error_type", "concurrency_conflict").
		Assert())
}

func Test_CommandWrapper_Handle_NoRetries_RecordsNoRetryMetrics(t *testing.T) {
	// arrange
	handler := &mockCommandHandler{result: mockResult{HandlerResult: shell.HandlerResult{RetryAttempts: 1}}}
	wrapper, metrics, _, _ := newCommandWrapper(t, handler)

	// act
	_, err := wrapper.Handle(t.Context(), mockCommand{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.CountCounterRecordsForMetric(shell.CommandHandlerRetriesMetric))
	assert.Equal(t, 0, metrics.CountDurationRecordsForMetric(shell.CommandHandlerRetryDelayMetric))
	assert.Equal(t, 0, metrics.CountCounterRecordsForMetric(shell.CommandHandlerMaxRetriesReachedMetric))
}

func Test_CommandWrapper_Handle_WithoutObservability(t *testing.T) {
	// arrange
	handler := &mockCommandHandler{err: core.ErrLoanNotFound}
	wrapper, err := observable.NewCommandWrapper[mockCommand, mockResult](handler)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(t.Context(), mockCommand{})

	// assert
	assert.ErrorIs(t, err, core.ErrLoanNotFound)
}

func Test_CommandWrapper_Handle_BasicLogger(t *testing.T) {
	// arrange
	handler := &mockCommandHandler{}
	logHandler := testdoubles.NewLogHandlerSpy(false)
	wrapper, err := observable.NewCommandWrapper[mockCommand, mockResult](
		handler,
		observable.WithLogging(newSlogLogger(logHandler)),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(t.Context(), mockCommand{})

	// assert
	require.NoError(t, err)
	assert.True(t, logHandler.HasLogWithAttr(shell.LogMsgCommandStarted, shell.LogAttrCommandType, "TestCommand"))
	assert.True(t, logHandler.HasLogWithAttr(shell.LogMsgCommandCompleted, shell.LogAttrBusinessOutcome, shell.StatusSuccess))
}

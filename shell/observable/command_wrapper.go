package observable

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-records/shell"
)

// CommandWrapper instruments a core command handler with metrics, tracing and logging.
// The wrapped handler keeps the business workflow and its own retry loop.
type CommandWrapper[C shell.Command, R shell.CommandResult] struct {
	coreHandler shell.CoreCommandHandler[C, R]
	commandType string
	instrumentation
}

// NewCommandWrapper creates a new observable wrapper around the core command handler.
func NewCommandWrapper[C shell.Command, R shell.CommandResult](
	coreHandler shell.CoreCommandHandler[C, R],
	opts ...Option,
) (*CommandWrapper[C, R], error) {

	inst, err := buildInstrumentation(opts)
	if err != nil {
		return nil, err
	}

	var zeroCommand C

	return &CommandWrapper[C, R]{
		coreHandler:     coreHandler,
		commandType:     zeroCommand.CommandType(),
		instrumentation: inst,
	}, nil
}

// Handle runs the core handler inside a span, attaches a correlation id to ctx,
// and reports the outcome.
func (w *CommandWrapper[C, R]) Handle(ctx context.Context, command C) (R, error) {
	commandStart := time.Now()

	ctx, correlationID := shell.EnsureCorrelationID(ctx)
	ctx, span := shell.StartCommandSpan(ctx, w.tracingCollector, w.commandType, correlationID.String())
	shell.LogCommandStart(ctx, w.logger, w.contextualLogger, w.commandType, correlationID.String())

	result, err := w.coreHandler.Handle(ctx, command)

	w.recordRetryMetrics(ctx, result.HandlerMetadata())

	duration := time.Since(commandStart)
	status := shell.StatusFor(err)

	shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, status, duration, err)
	shell.FinishSpan(w.tracingCollector, span, status, duration, err)

	switch status {
	case shell.StatusSuccess:
		shell.LogCommandSuccess(ctx, w.logger, w.contextualLogger, w.commandType, duration)
	case shell.StatusRejected:
		shell.LogCommandRejected(ctx, w.logger, w.contextualLogger, w.commandType, err, duration)
	default:
		shell.LogCommandError(ctx, w.logger, w.contextualLogger, w.commandType, status, err)
	}

	return result, err
}

// recordRetryMetrics records the retry summary of one handler run.
func (w *CommandWrapper[C, R]) recordRetryMetrics(ctx context.Context, result shell.HandlerResult) {
	if w.metricsCollector == nil {
		return
	}

	contextualCollector, isContextual := w.metricsCollector.(shell.ContextualMetricsCollector)

	if result.RetryAttempts > 1 {
		retryLabels := shell.BuildRetryLabels(w.commandType, result.RetryAttempts-1, result.LastErrorType)
		delayLabels := map[string]string{shell.LogAttrCommandType: w.commandType}

		if isContextual {
			contextualCollector.IncrementCounterContext(ctx, shell.CommandHandlerRetriesMetric, retryLabels)
			contextualCollector.RecordDurationContext(ctx, shell.CommandHandlerRetryDelayMetric, result.TotalRetryDelay, delayLabels)
		} else {
			w.metricsCollector.IncrementCounter(shell.CommandHandlerRetriesMetric, retryLabels)
			w.metricsCollector.RecordDuration(shell.CommandHandlerRetryDelayMetric, result.TotalRetryDelay, delayLabels)
		}
	}

	if result.RetriesExhausted {
		exhaustedLabels := map[string]string{
			shell.LogAttrCommandType: w.commandType,
			"final_error_type":       result.LastErrorType,
		}

		if isContextual {
			contextualCollector.IncrementCounterContext(ctx, shell.CommandHandlerMaxRetriesReachedMetric, exhaustedLabels)
		} else {
			w.metricsCollector.IncrementCounter(shell.CommandHandlerMaxRetriesReachedMetric, exhaustedLabels)
		}
	}
}

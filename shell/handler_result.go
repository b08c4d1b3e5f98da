package shell

import "time"

// HandlerResult carries the execution metadata of a command handler run.
// Feature results embed it so the observable wrapper can read retry information
// without knowing the concrete result type.
type HandlerResult struct {
	// RetryAttempts is the total number of attempts made (1 for no retries, 2+ for retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in backoff delays, excluding execution time.
	TotalRetryDelay time.Duration

	// LastErrorType describes the final error seen by the retry loop.
	// Values: "none", "concurrency_conflict", "context_canceled", "context_deadline_exceeded", "other"
	LastErrorType string

	// RetriesExhausted is true only when every attempt failed with a retryable error.
	RetriesExhausted bool
}

// HandlerMetadata returns the result itself. Feature results get it by embedding HandlerResult.
func (r HandlerResult) HandlerMetadata() HandlerResult {
	return r
}

// NewSuccessResult creates a HandlerResult for an operation that changed state.
func NewSuccessResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(retryMetrics)
}

// NewErrorResult creates a HandlerResult for a failed or rejected operation.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(retryMetrics)
}

func newHandlerResult(retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

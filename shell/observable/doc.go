// Package observable wraps command and query handlers with metrics, tracing and logging
// while the handlers themselves keep only the read, decide, apply workflow.
//
// Wrapping happens at wiring time, in main:
//
//	coreHandler := lendbook.NewCommandHandler(store)
//
//	handler, err := observable.NewCommandWrapper(
//		coreHandler,
//		observable.WithMetrics(metricsCollector),
//		observable.WithTracing(tracingCollector),
//		observable.WithContextualLogging(contextualLogger),
//	)
//
//	result, err := handler.Handle(ctx, command)
//
// A command that a business rule refuses is reported with status "rejected" and logged at info level.
// Only infrastructure failures, cancellations, timeouts and exhausted conflicts are logged as errors.
package observable

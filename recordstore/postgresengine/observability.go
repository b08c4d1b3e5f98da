package postgresengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/library-records/recordstore"
)

const (
	logMsgBuildQueryFailed    = "failed to build sql statement"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database statement execution failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgCompleted           = " completed"
	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "recordstore operation: "
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrOperation          = "operation"
	logAttrRowCount           = "row_count"
	logAttrDurationMS         = "duration_ms"
	logAttrExpectedRows       = "expected_rows"
	logAttrRowsAffected       = "rows_affected"

	metricOperationDuration    = "recordstore_operation_duration_seconds"
	metricRowsTouched          = "recordstore_rows_total"
	metricDatabaseErrors       = "recordstore_database_errors_total"
	metricConcurrencyConflicts = "recordstore_concurrency_conflicts_total"

	spanNamePrefix       = "recordstore."
	spanAttrOperation    = "operation"
	spanAttrErrorType    = "error_type"
	spanAttrRowCount     = "row_count"
	spanAttrDurationMS   = "duration_ms"
	spanAttrConsistency  = "consistency"
	metricLabelStatus    = "status"
	metricLabelErrorType = "error_type"

	statusSuccess  = "success"
	statusError    = "error"
	statusConflict = "conflict"

	errorTypeBuildQuery              = "build_query"
	errorTypeDatabaseQuery           = "database_query"
	errorTypeDatabaseExec            = "database_exec"
	errorTypeRowScan                 = "row_scan"
	errorTypeRowsAffected            = "rows_affected"
	errorTypeReferencedRecordMissing = "referenced_record_missing"
)

// operationObserver bundles the span, metrics and completion log of one store operation.
type operationObserver struct {
	rs        *RecordStore
	ctx       context.Context
	operation string
	span      recordstore.SpanContext
}

// startOperation opens a span (if tracing is configured) and returns an observer for the operation.
func (rs *RecordStore) startOperation(ctx context.Context, operation string) (context.Context, *operationObserver) {
	observer := &operationObserver{rs: rs, ctx: ctx, operation: operation}

	if rs.tracingCollector != nil {
		attrs := map[string]string{
			spanAttrOperation:   operation,
			spanAttrConsistency: recordstore.GetConsistencyLevel(ctx).String(),
		}
		observer.ctx, observer.span = rs.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, attrs)
	}

	return observer.ctx, observer
}

func (o *operationObserver) finishSuccess(rowCount int64, duration time.Duration) {
	o.rs.recordDuration(o.ctx, duration, o.operation, statusSuccess)
	o.rs.recordValue(o.ctx, metricRowsTouched, float64(rowCount), o.operation, statusSuccess)

	o.rs.logOperation(
		o.ctx,
		o.operation+logMsgCompleted,
		logAttrRowCount, rowCount,
		logAttrDurationMS, toMilliseconds(duration),
	)

	o.finishSpan(statusSuccess, map[string]string{
		spanAttrRowCount:   fmt.Sprintf("%d", rowCount),
		spanAttrDurationMS: fmt.Sprintf("%.2f", toMilliseconds(duration)),
	})
}

func (o *operationObserver) finishError(errorType string) {
	o.rs.incrementCounter(o.ctx, metricDatabaseErrors, map[string]string{
		spanAttrOperation:    o.operation,
		metricLabelStatus:    statusError,
		metricLabelErrorType: errorType,
	})

	o.finishSpan(statusError, map[string]string{spanAttrErrorType: errorType})
}

func (o *operationObserver) finishConflict(duration time.Duration) {
	o.rs.recordDuration(o.ctx, duration, o.operation, statusConflict)
	o.rs.incrementCounter(o.ctx, metricConcurrencyConflicts, map[string]string{
		spanAttrOperation: o.operation,
		"conflict_type":   "concurrency",
	})

	o.finishSpan(statusConflict, nil)
}

func (o *operationObserver) finishSpan(status string, attrs map[string]string) {
	if o.rs.tracingCollector == nil || o.span == nil {
		return
	}

	o.span.SetStatus(status)
	for key, value := range attrs {
		o.span.AddAttribute(key, value)
	}

	o.rs.tracingCollector.FinishSpan(o.span, status, attrs)
}

// recordDuration records the operation duration, using the context-aware method if available.
func (rs *RecordStore) recordDuration(ctx context.Context, duration time.Duration, operation, status string) {
	if rs.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, metricLabelStatus: status}

	if contextualCollector, ok := rs.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
		return
	}

	rs.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
}

func (rs *RecordStore) recordValue(ctx context.Context, metric string, value float64, operation, status string) {
	if rs.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, metricLabelStatus: status}

	if contextualCollector, ok := rs.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, labels)
		return
	}

	rs.metricsCollector.RecordValue(metric, value, labels)
}

func (rs *RecordStore) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if rs.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := rs.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	rs.metricsCollector.IncrementCounter(metric, labels)
}

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (rs *RecordStore) logQueryWithDuration(ctx context.Context, sqlQuery, operation string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if rs.logger != nil {
		rs.logger.Debug(logMsgSQLExecuted+operation, args...)
	}

	if rs.contextualLogger != nil {
		rs.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+operation, args...)
	}
}

// logOperation logs operational information at info level.
func (rs *RecordStore) logOperation(ctx context.Context, action string, args ...any) {
	if rs.logger != nil {
		rs.logger.Info(logMsgOperation+action, args...)
	}

	if rs.contextualLogger != nil {
		rs.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
}

func (rs *RecordStore) logWarn(ctx context.Context, message string, args ...any) {
	if rs.logger != nil {
		rs.logger.Warn(message, args...)
	}

	if rs.contextualLogger != nil {
		rs.contextualLogger.WarnContext(ctx, message, args...)
	}
}

// logError logs error information at the error level.
func (rs *RecordStore) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if rs.logger != nil {
		rs.logger.Error(message, allArgs...)
	}

	if rs.contextualLogger != nil {
		rs.contextualLogger.ErrorContext(ctx, message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

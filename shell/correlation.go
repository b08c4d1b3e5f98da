package shell

import (
	"context"

	"github.com/google/uuid"
)

// LogAttrCorrelationID ties the log lines, spans and store calls of one command together.
const LogAttrCorrelationID = "correlation_id"

type correlationKey struct{}

// WithCorrelationID returns a context carrying id.
func WithCorrelationID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationIDFrom returns the correlation id stored in ctx, if any.
func CorrelationIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(correlationKey{}).(uuid.UUID)
	return id, ok
}

// EnsureCorrelationID keeps an existing correlation id or adds a fresh random one.
func EnsureCorrelationID(ctx context.Context) (context.Context, uuid.UUID) {
	if id, ok := CorrelationIDFrom(ctx); ok {
		return ctx, id
	}

	id := uuid.New()

	return WithCorrelationID(ctx, id), id
}

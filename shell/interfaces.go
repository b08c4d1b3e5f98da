package shell

import (
	"context"
)

// Command is the contract for all command types.
// CommandType names the command in logs, metrics and spans.
type Command interface {
	CommandType() string
}

// CommandResult is the contract for command handler results.
// Embedding HandlerResult satisfies it.
type CommandResult interface {
	HandlerMetadata() HandlerResult
}

// CoreCommandHandler processes a command with business logic only: read, decide, apply.
// It is wrapped by observable.CommandWrapper for metrics, tracing and logging.
type CoreCommandHandler[C Command, R CommandResult] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// Query is the contract for all query types.
type Query interface {
	QueryType() string
}

// QueryResult is the contract for query handler results. Len is the number of rows returned.
type QueryResult interface {
	Len() int
}

// CoreQueryHandler reads records without side effects.
type CoreQueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

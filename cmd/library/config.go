package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/AntonStoeckl/library-records/menu"
	"github.com/AntonStoeckl/library-records/shell/config"
)

const (
	// EnvDBAdapter selects the database access library.
	EnvDBAdapter = "DB_ADAPTER"

	adapterPGX  = "pgx"
	adapterSQL  = "sql"
	adapterSQLX = "sqlx"
)

var (
	errUnknownAdapter    = errors.New("unknown database adapter (supported: pgx, sql, sqlx)")
	errReplicaNeedsPGX   = errors.New("a read replica is only supported with the pgx adapter")
	errUnknownOutput     = errors.New("unknown output format (supported: text, json)")
	errUnknownLogLevel   = errors.New("unknown log level (supported: debug, info, warn, error)")
	errUnexpectedCommand = errors.New("unexpected positional arguments")
)

// Config holds the process configuration from flags and environment.
type Config struct {
	Output               string
	LogLevel             slog.Level
	CreateSchema         bool
	ObservabilityEnabled bool

	Adapter      string
	PrimaryDSN   string
	ReplicaDSN   string
	OTLPEndpoint string
}

// parseConfig reads flags from args and the rest from the environment via getenv.
func parseConfig(args []string, getenv func(string) string, usageOutput io.Writer) (Config, error) {
	flags := flag.NewFlagSet("library", flag.ContinueOnError)
	flags.SetOutput(usageOutput)

	var (
		output        = flags.String("output", menu.OutputText, "Output format: text or json")
		logLevel      = flags.String("log-level", "error", "Log level on stderr: debug, info, warn or error")
		createSchema  = flags.Bool("create-schema", false, "Create the tables if they do not exist")
		observability = flags.Bool("observability-enabled", false, "Export OpenTelemetry traces and metrics over OTLP")
	)

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if flags.NArg() > 0 {
		return Config{}, fmt.Errorf("%w: %s", errUnexpectedCommand, strings.Join(flags.Args(), " "))
	}

	cfg := Config{
		Output:               strings.ToLower(*output),
		CreateSchema:         *createSchema,
		ObservabilityEnabled: *observability,
		Adapter:              strings.ToLower(getenv(EnvDBAdapter)),
		PrimaryDSN:           getenv(config.EnvPostgresDSN),
		ReplicaDSN:           getenv(config.EnvPostgresReplicaDSN),
		OTLPEndpoint:         getenv(config.EnvOTLPEndpoint),
	}

	if cfg.Output != menu.OutputText && cfg.Output != menu.OutputJSON {
		return Config{}, fmt.Errorf("%w: %q", errUnknownOutput, *output)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(*logLevel)); err != nil {
		return Config{}, fmt.Errorf("%w: %q", errUnknownLogLevel, *logLevel)
	}

	switch cfg.Adapter {
	case "":
		cfg.Adapter = adapterPGX
	case adapterPGX, adapterSQLX:
	case adapterSQL, "sql.db":
		cfg.Adapter = adapterSQL
	default:
		return Config{}, fmt.Errorf("%w: %q", errUnknownAdapter, cfg.Adapter)
	}

	if cfg.ReplicaDSN != "" && cfg.Adapter != adapterPGX {
		return Config{}, errReplicaNeedsPGX
	}

	if cfg.PrimaryDSN == "" {
		cfg.PrimaryDSN = config.PostgresDSN()
	}

	if cfg.OTLPEndpoint == "" {
		cfg.OTLPEndpoint = config.OTLPEndpoint()
	}

	return cfg, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AntonStoeckl/library-records/recordstore/postgresengine"
	"github.com/AntonStoeckl/library-records/shell/config"
)

// openRecordStore opens the database handle(s) for the configured adapter.
// The returned close function releases them and must be called once at exit.
func openRecordStore(
	ctx context.Context,
	cfg Config,
	logger *slog.Logger,
	options ...postgresengine.Option,
) (*postgresengine.RecordStore, func(), error) {

	logger.Info("opening record store", "adapter", cfg.Adapter, "replica", cfg.ReplicaDSN != "")

	switch cfg.Adapter {
	case adapterPGX:
		return openPGXRecordStore(ctx, cfg, options...)
	case adapterSQL:
		db, err := config.OpenPostgresSQLDB(ctx, cfg.PrimaryDSN)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewRecordStoreFromSQLDB(db, options...)
		if err != nil {
			return nil, nil, errors.Join(err, db.Close())
		}

		return store, func() { closeWithLog(logger, "sql.DB", db.Close) }, nil
	case adapterSQLX:
		db, err := config.OpenPostgresSQLX(ctx, cfg.PrimaryDSN)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewRecordStoreFromSQLX(db, options...)
		if err != nil {
			return nil, nil, errors.Join(err, db.Close())
		}

		return store, func() { closeWithLog(logger, "sqlx.DB", db.Close) }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", errUnknownAdapter, cfg.Adapter)
	}
}

func openPGXRecordStore(
	ctx context.Context,
	cfg Config,
	options ...postgresengine.Option,
) (*postgresengine.RecordStore, func(), error) {

	primary, err := config.OpenPostgresPGXPool(ctx, cfg.PrimaryDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("primary database: %w", err)
	}

	if cfg.ReplicaDSN == "" {
		store, storeErr := postgresengine.NewRecordStoreFromPGXPool(primary, options...)
		if storeErr != nil {
			primary.Close()
			return nil, nil, storeErr
		}

		return store, primary.Close, nil
	}

	replica, err := config.OpenPostgresPGXPool(ctx, cfg.ReplicaDSN)
	if err != nil {
		primary.Close()
		return nil, nil, fmt.Errorf("replica database: %w", err)
	}

	closePools := func() {
		replica.Close()
		primary.Close()
	}

	store, err := postgresengine.NewRecordStoreFromPGXPoolAndReplica(primary, replica, options...)
	if err != nil {
		closePools()
		return nil, nil, err
	}

	return store, closePools, nil
}

func closeWithLog(logger *slog.Logger, name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.Error("closing database handle failed", "handle", name, "error", err)
	}
}

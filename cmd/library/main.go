package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/AntonStoeckl/library-records/menu"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}

		os.Exit(1)
	}
}

func run() error {
	cfg, err := parseConfig(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tel, err := newTelemetry(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer tel.shutdown()

	store, closeStore, err := openRecordStore(ctx, cfg, logger, tel.storeOptions...)
	if err != nil {
		return fmt.Errorf("opening record store: %w", err)
	}
	defer closeStore()

	if cfg.CreateSchema {
		if err = store.CreateSchema(ctx); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	handlers, err := buildHandlers(store, tel.wrapperOptions)
	if err != nil {
		return err
	}

	renderer, err := menu.NewRenderer(cfg.Output, os.Stdout)
	if err != nil {
		return err
	}

	m, err := menu.New(os.Stdin, os.Stdout, handlers, menu.WithRenderer(renderer))
	if err != nil {
		return err
	}

	// A signal unblocks the pending prompt by closing stdin.
	go func() {
		<-ctx.Done()
		_ = os.Stdin.Close()
	}()

	if err = m.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	logger.Info("session ended")

	return nil
}

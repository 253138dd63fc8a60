package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"finboard/internal/backend"
	"finboard/internal/cli"
	apphttp "finboard/internal/http"
	"finboard/internal/log"
	"finboard/internal/session"
)

func main() {
	cfg, logger := cli.LoadAndValidateConfig()

	factory, err := backend.NewFactory(backend.Type(cfg.DataBackend), logger.WithComponent(log.ComponentStore).Logger)
	if err != nil {
		logger.Error("Failed to initialize store factory", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	logger.Info("Initialized store factory", log.FieldBackend, factory.Type())

	sessionLogger := logger.WithComponent(log.ComponentSession).Logger
	registry := session.NewRegistry(factory, cfg.SessionIdleTimeout, sessionLogger)
	janitor, err := session.NewJanitor(registry, cfg.SessionSweepSchedule, sessionLogger)
	if err != nil {
		logger.Error("Failed to schedule session janitor", log.FieldError, err)
		os.Exit(1)
	}

	publisher := cli.NewPublisher(cfg, logger.WithComponent(log.ComponentAMQP))

	srv := apphttp.NewServer(apphttp.Options{
		Addr:               ":" + cfg.Port,
		Registry:           registry,
		Publisher:          publisher,
		CurrencyLabel:      cfg.CurrencyLabel,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Logger:             logger.WithComponent(log.ComponentHTTP).Logger,
	})
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := cli.SignalContext()
	defer stop()

	janitor.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting finboard server", "port", cfg.Port, log.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)
		return cli.Shutdown(logger, 30*time.Second,
			cli.ShutdownStep{Name: "http", Fn: srv.Shutdown},
			cli.ShutdownStep{Name: "janitor", Fn: janitor.Stop},
			cli.ShutdownStep{Name: "publisher", Fn: func(context.Context) error { return publisher.Close() }},
			cli.ShutdownStep{Name: "sessions", Fn: func(context.Context) error { return registry.Close() }},
		)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

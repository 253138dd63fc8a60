// Package cli provides the process bootstrap shared by cmd/finboard:
// logger setup, config validation, optional broker wiring and ordered
// shutdown.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finboard/internal/config"
	"finboard/internal/events"
	"finboard/internal/events/amqp"
	"finboard/internal/log"
)

// SetupLogger builds the root logger at the given level name and installs it
// as the slog default. An unknown level falls back to info.
func SetupLogger(levelName string) *log.Logger {
	level, _ := config.ParseLevel(levelName)
	cfg := log.DefaultConfig()
	cfg.Level = level
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig() (*config.Config, *log.Logger) {
	cfg := config.Load()
	logger := SetupLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg, logger
}

// dialer is swapped in tests.
var dialer = func(url, exchange, queue string) (events.Publisher, error) {
	return amqp.NewClient(url, exchange, queue)
}

// NewPublisher connects to the broker when AMQP_URL is set. A broker that
// cannot be reached disables events instead of failing startup.
func NewPublisher(cfg *config.Config, logger *log.Logger) events.Publisher {
	if cfg.AMQPURL == "" {
		logger.Info("AMQP disabled - no AMQP_URL provided")
		return events.Nop{}
	}
	pub, err := dialer(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("AMQP unavailable, transaction events disabled", log.FieldError, err)
		return events.Nop{}
	}
	logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	return pub
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// ShutdownStep is one named piece of teardown.
type ShutdownStep struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Shutdown runs steps in order under a shared timeout. Every step runs even
// if an earlier one fails; the failures are joined.
func Shutdown(logger *log.Logger, timeout time.Duration, steps ...ShutdownStep) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	for _, step := range steps {
		if err := step.Fn(ctx); err != nil {
			logger.Error("Shutdown step failed", "step", step.Name, log.FieldError, err)
			errs = append(errs, fmt.Errorf("%s: %w", step.Name, err))
			continue
		}
		logger.Debug("Shutdown step done", "step", step.Name)
	}
	if ctx.Err() != nil {
		logger.Warn("Shutdown timeout reached")
	}
	return errors.Join(errs...)
}

package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Janitor sweeps idle sessions on a cron schedule such as "@every 5m".
type Janitor struct {
	cron     *cron.Cron
	registry *Registry
}

func NewJanitor(registry *Registry, schedule string, logger *slog.Logger) (*Janitor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := cron.New()
	j := &Janitor{cron: c, registry: registry}
	if _, err := c.AddFunc(schedule, j.run); err != nil {
		return nil, fmt.Errorf("parse sweep schedule %q: %w", schedule, err)
	}
	logger.Info("Session janitor scheduled", "schedule", schedule)
	return j, nil
}

func (j *Janitor) run() {
	j.registry.Sweep(time.Now())
}

func (j *Janitor) Start() {
	j.cron.Start()
}

// Stop halts the schedule and waits for a running sweep, bounded by ctx.
func (j *Janitor) Stop(ctx context.Context) error {
	done := j.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

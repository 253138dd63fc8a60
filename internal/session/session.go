// Package session owns the per-visitor transaction stores. Each session has
// its own store; nothing is shared between sessions except the registry map.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"finboard/internal/backend"
	"finboard/internal/log"
	"finboard/internal/store"
)

type Session struct {
	ID        string
	Store     store.TransactionStore
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// LastSeen is the time of the most recent Resolve for this session.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Registry maps session IDs to live sessions.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	factory  backend.Factory
	idle     time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewRegistry creates an empty registry. Sessions idle for longer than idle
// are dropped by Sweep.
func NewRegistry(factory backend.Factory, idle time.Duration, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		factory:  factory,
		idle:     idle,
		now:      time.Now,
		logger:   logger,
	}
}

// Resolve returns the session for id, or starts a new one with an empty store
// when id is unknown, expired or malformed. created reports the latter.
func (r *Registry) Resolve(ctx context.Context, id string) (s *Session, created bool, err error) {
	now := r.now()

	r.mu.Lock()
	if existing, ok := r.sessions[id]; ok {
		// touched under r.mu so a concurrent Sweep cannot drop it in between
		existing.touch(now)
		r.mu.Unlock()
		return existing, false, nil
	}
	r.mu.Unlock()

	st, err := r.factory.NewStore(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("create session store: %w", err)
	}
	s = &Session{
		ID:        uuid.NewString(),
		Store:     st,
		CreatedAt: now,
		lastSeen:  now,
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "Session started", log.FieldSessionID, s.ID)
	return s, true, nil
}

// Get returns a live session without creating one.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops and closes sessions idle since before now-idle. It returns the
// number of sessions removed.
func (r *Registry) Sweep(now time.Time) int {
	if r.idle <= 0 {
		return 0
	}
	cutoff := now.Add(-r.idle)

	var expired []*Session
	r.mu.Lock()
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		if err := s.Store.Close(); err != nil {
			r.logger.Warn("Failed to close session store", log.FieldSessionID, s.ID, log.FieldError, err)
		}
	}
	if len(expired) > 0 {
		r.logger.Info("Expired idle sessions", "removed", len(expired))
	}
	return len(expired)
}

// Close ends every session.
func (r *Registry) Close() error {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	var firstErr error
	for _, s := range all {
		if err := s.Store.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close session %s: %w", s.ID, err)
		}
	}
	return firstErr
}

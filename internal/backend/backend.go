package backend

import (
	"context"
	"fmt"
	"log/slog"

	"finboard/internal/store"
	"finboard/internal/store/memory"
	"finboard/internal/store/sqlite"
)

// Type selects the per-session store implementation.
type Type string

const (
	Memory Type = "memory"
	SQLite Type = "sqlite"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known
func (t Type) IsValid() bool {
	switch t {
	case Memory, SQLite:
		return true
	default:
		return false
	}
}

// Factory builds one independent store per session.
type Factory interface {
	NewStore(ctx context.Context) (store.TransactionStore, error)
}

// DefaultFactory creates stores of a fixed type.
type DefaultFactory struct {
	kind   Type
	logger *slog.Logger
}

// NewFactory validates the backend type up front so that session creation
// can only fail on resource errors.
func NewFactory(kind Type, logger *slog.Logger) (*DefaultFactory, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", kind)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{kind: kind, logger: logger}, nil
}

// Type reports which store implementation this factory produces.
func (f *DefaultFactory) Type() Type {
	return f.kind
}

// NewStore implements Factory.
func (f *DefaultFactory) NewStore(ctx context.Context) (store.TransactionStore, error) {
	switch f.kind {
	case SQLite:
		s, err := sqlite.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("create sqlite store: %w", err)
		}
		f.logger.DebugContext(ctx, "Created session store", "backend", f.kind)
		return s, nil
	default:
		f.logger.DebugContext(ctx, "Created session store", "backend", f.kind)
		return memory.New(), nil
	}
}

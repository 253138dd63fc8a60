package store

import (
	"context"

	"finboard/internal/core"
)

// TransactionStore is the append-only, per-session transaction table.
type TransactionStore interface {
	// Append adds one transaction. No deduplication is performed.
	Append(ctx context.Context, t core.Transaction) error
	// All returns a snapshot of every transaction in insertion order.
	All(ctx context.Context) ([]core.Transaction, error)
	// Len reports how many transactions have been appended.
	Len(ctx context.Context) (int, error)
	Close() error
}

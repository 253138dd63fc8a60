// Package events announces recorded transactions to optional downstream
// consumers.
package events

import (
	"context"

	"finboard/internal/core"
)

// Publisher emits a notification after a transaction has been stored.
type Publisher interface {
	PublishTransactionRecorded(ctx context.Context, sessionID string, t core.Transaction) error
	Close() error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) PublishTransactionRecorded(context.Context, string, core.Transaction) error { return nil }

func (Nop) Close() error { return nil }

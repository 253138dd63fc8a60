package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"finboard/internal/core"
	"finboard/internal/events"
)

var _ events.Publisher = (*Client)(nil)

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"closed sentinel", amqp091.ErrClosed, true},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"unexpected EOF", errors.New("unexpected EOF"), true},
		{"access refused", errors.New("Exception (403) Reason: \"ACCESS_REFUSED\""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestTransactionRecordedMessage(t *testing.T) {
	tx := core.Transaction{Date: core.NewDate(2024, 1, 2), Kind: core.Expense, Category: core.Food, Amount: 500}
	msg := NewTransactionRecordedMessage("abc", tx)
	if msg.Date != "2024-01-02" || msg.Kind != "Expense" || msg.Category != "Food" || msg.Amount != 500 {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var wire map[string]interface{}
	if err := json.Unmarshal(body, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]interface{}{
		"session_id": "abc",
		"date":       "2024-01-02",
		"kind":       "Expense",
		"category":   "Food",
		"amount":     float64(500),
	}
	for k, v := range want {
		if wire[k] != v {
			t.Errorf("%s = %v, want %v", k, wire[k], v)
		}
	}
	if _, ok := wire["timestamp"].(string); !ok {
		t.Errorf("timestamp missing from %s", body)
	}
}

func TestPublishWithoutChannelIsConnectionError(t *testing.T) {
	c := &Client{}
	err := c.publishLocked(context.Background(), []byte("{}"))
	if !isConnectionError(err) {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestReconnectSkippedWhenContextDone(t *testing.T) {
	dialed := false
	c := &Client{url: "amqp://localhost:1/", dial: func(string, time.Duration) (*amqp091.Connection, error) {
		dialed = true
		return nil, errors.New("unreachable")
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tx := core.Transaction{Date: core.NewDate(2024, 1, 2), Kind: core.Income, Category: core.Salary, Amount: 1}
	err := c.PublishTransactionRecorded(ctx, "abc", tx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if dialed {
		t.Fatalf("dialed after the caller gave up")
	}
}

func TestReconnectDialIsBounded(t *testing.T) {
	var got time.Duration
	c := &Client{url: "amqp://localhost:1/", dial: func(_ string, timeout time.Duration) (*amqp091.Connection, error) {
		got = timeout
		return nil, errors.New("connection refused")
	}}
	tx := core.Transaction{Date: core.NewDate(2024, 1, 2), Kind: core.Income, Category: core.Salary, Amount: 1}

	if err := c.PublishTransactionRecorded(context.Background(), "abc", tx); err == nil {
		t.Fatalf("expected reconnect error")
	}
	if got != publishTimeout {
		t.Fatalf("dial timeout = %v, want %v", got, publishTimeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := c.PublishTransactionRecorded(ctx, "abc", tx); err == nil {
		t.Fatalf("expected reconnect error")
	}
	if got <= 0 || got > 200*time.Millisecond {
		t.Fatalf("dial timeout = %v, want at most the caller's deadline", got)
	}
}

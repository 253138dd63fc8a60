package amqp

import (
	"encoding/json"
	"time"

	"finboard/internal/core"
)

// TransactionRecordedMessage is published once per appended transaction.
type TransactionRecordedMessage struct {
	SessionID string    `json:"session_id"`
	Date      string    `json:"date"`
	Kind      string    `json:"kind"`
	Category  string    `json:"category"`
	Amount    int64     `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionRecordedMessage(sessionID string, t core.Transaction) *TransactionRecordedMessage {
	return &TransactionRecordedMessage{
		SessionID: sessionID,
		Date:      t.Date.String(),
		Kind:      string(t.Kind),
		Category:  string(t.Category),
		Amount:    t.Amount,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

package amqp

import (
	"encoding/json"
	"time"

	"ledger/internal/core"
)

// Event names carried by LedgerEvent.
const (
	EventTransactionRecorded = "transaction_recorded"
	EventLedgerReplaced      = "ledger_replaced"
)

// LedgerEvent announces a change to the ledger. Transaction fields are set for
// EventTransactionRecorded, Count for EventLedgerReplaced.
type LedgerEvent struct {
	Event       string    `json:"event"`
	Kind        string    `json:"kind,omitempty"`
	Amount      float64   `json:"amount,omitempty"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	Count       int       `json:"count,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewRecordedEvent creates the event for a newly added transaction
func NewRecordedEvent(t core.Transaction) *LedgerEvent {
	return &LedgerEvent{
		Event:       EventTransactionRecorded,
		Kind:        t.Kind.String(),
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		Timestamp:   time.Now().UTC(),
	}
}

// NewReplacedEvent creates the event for a ledger replaced by a file load
func NewReplacedEvent(count int) *LedgerEvent {
	return &LedgerEvent{
		Event:     EventLedgerReplaced,
		Count:     count,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventFromJSON creates a message from JSON bytes
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var msg LedgerEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

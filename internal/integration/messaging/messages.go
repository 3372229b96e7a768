// Package messaging publishes and consumes ledger events over AMQP.
package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

// EncodeEvent converts an event to its JSON wire form.
func EncodeEvent(event adapter.LedgerEvent) ([]byte, error) {
	return json.Marshal(event)
}

// DecodeEvent parses and validates an event received from the broker.
func DecodeEvent(data []byte) (adapter.LedgerEvent, error) {
	var event adapter.LedgerEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return adapter.LedgerEvent{}, fmt.Errorf("decode ledger event: %w", err)
	}

	switch event.Event {
	case adapter.EventCreated, adapter.EventUpdated, adapter.EventDeleted:
	default:
		return adapter.LedgerEvent{}, fmt.Errorf("unknown event type %q", event.Event)
	}

	switch event.EntityType {
	case adapter.EntityCategory, adapter.EntityTransaction, adapter.EntityInvestment:
	default:
		return adapter.LedgerEvent{}, fmt.Errorf("unknown entity type %q", event.EntityType)
	}

	if event.EntityID == uuid.Nil {
		return adapter.LedgerEvent{}, fmt.Errorf("ledger event without entity id")
	}
	return event, nil
}

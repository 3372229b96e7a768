package adapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// EventType is the kind of change a ledger event reports.
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// EntityType names the kind of entity a ledger event is about.
type EntityType string

const (
	EntityCategory    EntityType = "category"
	EntityTransaction EntityType = "transaction"
	EntityInvestment  EntityType = "investment"
)

// LedgerEvent is published after a ledger entity changes.
type LedgerEvent struct {
	Event      EventType  `json:"event"`
	EntityType EntityType `json:"entityType"`
	EntityID   uuid.UUID  `json:"entityID"`
	UserID     uuid.UUID  `json:"userID"`
	OccurredAt time.Time  `json:"occurredAt"`
}

// EventPublisher publishes ledger events.
type EventPublisher interface {
	Publish(ctx context.Context, event LedgerEvent) error
}

// PublishLogged publishes event, logging instead of returning a failure.
// Events never fail the change that produced them.
func PublishLogged(ctx context.Context, publisher EventPublisher, event LedgerEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish ledger event",
			"error", err,
			"event", event.Event,
			"entityType", event.EntityType,
			"entityID", event.EntityID)
	}
}

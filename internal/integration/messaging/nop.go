package messaging

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

// nopPublisher drops events. It is used when no broker is configured.
type nopPublisher struct{}

// NewNopPublisher returns a publisher that only logs at debug level.
func NewNopPublisher() adapter.EventPublisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(ctx context.Context, event adapter.LedgerEvent) error {
	slog.DebugContext(ctx, "Ledger event not published, messaging disabled",
		"event", event.Event,
		"entityType", event.EntityType,
		"entityID", event.EntityID)
	return nil
}

package investment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

// InvalidateValuationsUseCase drops cached valuations when a ledger event
// reports a change to an investment made by another process.
type InvalidateValuationsUseCase struct {
	cache adapter.ValuationCache
}

// NewInvalidateValuationsUseCase creates a new InvalidateValuationsUseCase instance.
func NewInvalidateValuationsUseCase(cache adapter.ValuationCache) *InvalidateValuationsUseCase {
	return &InvalidateValuationsUseCase{
		cache: cache,
	}
}

// Handle evicts the valuations of the investment an event is about. Events
// about other entities and creations are ignored. A returned error means the
// event should be retried.
func (uc *InvalidateValuationsUseCase) Handle(ctx context.Context, event adapter.LedgerEvent) error {
	if event.EntityType != adapter.EntityInvestment || event.Event == adapter.EventCreated {
		return nil
	}

	if err := uc.cache.Evict(ctx, event.EntityID); err != nil {
		return fmt.Errorf("failed to evict cached valuations: %w", err)
	}

	slog.DebugContext(ctx, "Evicted cached valuations",
		"investmentID", event.EntityID,
		"event", event.Event)
	return nil
}

package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ValuationKey identifies one cached valuation. Version is the investment's
// UpdatedAt, so editing an investment makes its older entries unreachable.
type ValuationKey struct {
	InvestmentID uuid.UUID
	Version      time.Time
	Month        int
}

// ValuationCache stores computed investment valuations.
type ValuationCache interface {
	// Get returns the cached value and whether it was found.
	Get(ctx context.Context, key ValuationKey) (float64, bool, error)

	// Set stores a value.
	Set(ctx context.Context, key ValuationKey, value float64) error

	// Evict removes every cached value of an investment.
	Evict(ctx context.Context, investmentID uuid.UUID) error
}

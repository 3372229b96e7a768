// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// DashboardRepository defines the interface for dashboard data operations.
type DashboardRepository interface {
	// GetDateRange returns the date range of the user's transactions and investments.
	GetDateRange(ctx context.Context, userID uuid.UUID) (*DateRange, error)

	// GetEntries returns the user's transactions and investments dated within
	// the optional bounds, ordered by date.
	GetEntries(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time) ([]Entry, error)
}

// DateRange represents the date boundaries of a user's ledger.
type DateRange struct {
	OldestDate   *time.Time
	NewestDate   *time.Time
	TotalEntries int
}

// Entry is a transaction or an investment flattened for aggregation.
type Entry struct {
	ID            uuid.UUID
	Kind          adapter.EntityType
	Description   string
	CategoryID    uuid.UUID
	CategoryLabel string
	CategoryType  entity.CategoryType
	Value         decimal.Decimal
	Date          time.Time
	Recurrence    bool
}

// Totals sums entry values per category type.
type Totals struct {
	Cost       decimal.Decimal
	Gain       decimal.Decimal
	Investment decimal.Decimal
	Count      int
}

// Add accumulates one entry.
func (t *Totals) Add(e Entry) {
	switch e.CategoryType {
	case entity.CategoryTypeCost:
		t.Cost = t.Cost.Add(e.Value)
	case entity.CategoryTypeGain:
		t.Gain = t.Gain.Add(e.Value)
	case entity.CategoryTypeInvestment:
		t.Investment = t.Investment.Add(e.Value)
	}
	t.Count++
}

// Net is gains minus costs. Investments move money but are not spent.
func (t Totals) Net() decimal.Decimal {
	return t.Gain.Sub(t.Cost)
}

// Period bounds a dashboard query. Nil bounds are open.
type Period struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/dashboard"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// dashboardRepository implements the dashboard.DashboardRepository interface.
// Grouping happens in the use cases so the queries stay portable between
// PostgreSQL and SQLite.
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository instance.
func NewDashboardRepository(db *gorm.DB) dashboard.DashboardRepository {
	return &dashboardRepository{
		db: db,
	}
}

// GetDateRange returns the date range of the user's transactions and investments.
func (r *dashboardRepository) GetDateRange(
	ctx context.Context,
	userID uuid.UUID,
) (*dashboard.DateRange, error) {
	result := &dashboard.DateRange{}

	for _, m := range []any{&model.TransactionModel{}, &model.InvestmentModel{}} {
		var count int64
		if err := r.db.WithContext(ctx).Model(m).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count entries: %w", err)
		}
		if count == 0 {
			continue
		}
		result.TotalEntries += int(count)

		oldest, err := r.boundaryDate(ctx, m, userID, "date ASC")
		if err != nil {
			return nil, err
		}
		newest, err := r.boundaryDate(ctx, m, userID, "date DESC")
		if err != nil {
			return nil, err
		}

		if result.OldestDate == nil || oldest.Before(*result.OldestDate) {
			result.OldestDate = &oldest
		}
		if result.NewestDate == nil || newest.After(*result.NewestDate) {
			result.NewestDate = &newest
		}
	}

	return result, nil
}

func (r *dashboardRepository) boundaryDate(ctx context.Context, m any, userID uuid.UUID, order string) (time.Time, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order(order)

	var date time.Time
	switch m.(type) {
	case *model.TransactionModel:
		var row model.TransactionModel
		if err := query.First(&row).Error; err != nil {
			return time.Time{}, fmt.Errorf("failed to get date range: %w", err)
		}
		date = row.Date
	case *model.InvestmentModel:
		var row model.InvestmentModel
		if err := query.First(&row).Error; err != nil {
			return time.Time{}, fmt.Errorf("failed to get date range: %w", err)
		}
		date = row.Date
	}
	return entity.CalendarDate(date), nil
}

// GetEntries returns the user's transactions and investments within the bounds.
func (r *dashboardRepository) GetEntries(
	ctx context.Context,
	userID uuid.UUID,
	startDate, endDate *time.Time,
) ([]dashboard.Entry, error) {
	filter := entity.TransactionFilter{Begin: startDate, Until: endDate}

	var txModels []model.TransactionModel
	query := applyFilter(r.db.WithContext(ctx).Preload("Category").Where("user_id = ?", userID), filter)
	if err := query.Order("date ASC, created_at ASC").Find(&txModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	var invModels []model.InvestmentModel
	query = applyFilter(r.db.WithContext(ctx).Preload("Category").Where("user_id = ?", userID), filter)
	if err := query.Order("date ASC, created_at ASC").Find(&invModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get investments: %w", err)
	}

	entries := make([]dashboard.Entry, 0, len(txModels)+len(invModels))
	for i := range txModels {
		entries = append(entries, entryOf(adapter.EntityTransaction, txModels[i].ToEntity()))
	}
	for i := range invModels {
		entries = append(entries, entryOf(adapter.EntityInvestment, &invModels[i].ToEntity().Transaction))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries, nil
}

func entryOf(kind adapter.EntityType, t *entity.Transaction) dashboard.Entry {
	e := dashboard.Entry{
		ID:          t.ID,
		Kind:        kind,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		Value:       t.Value.Decimal(),
		Date:        t.Date,
		Recurrence:  t.Recurrence,
	}
	if t.Category != nil {
		e.CategoryLabel = t.Category.Label
		e.CategoryType = t.Category.Type
	}
	if kind == adapter.EntityInvestment {
		e.CategoryType = entity.CategoryTypeInvestment
	}
	return e
}

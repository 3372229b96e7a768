package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// GetRecurrenceBreakdownInput represents the input for the recurrence view.
type GetRecurrenceBreakdownInput struct {
	UserID uuid.UUID
	Period Period
}

// RecurringItem groups recurring entries sharing a description and type.
type RecurringItem struct {
	Description string
	Type        entity.CategoryType
	Total       decimal.Decimal
	Count       int
}

// GetRecurrenceBreakdownOutput represents the output of the recurrence view.
type GetRecurrenceBreakdownOutput struct {
	Recurring Totals
	OneOff    Totals
	Items     []RecurringItem
}

// GetRecurrenceBreakdownUseCase splits entries into recurring and one-off
// movements and itemizes the recurring ones.
type GetRecurrenceBreakdownUseCase struct {
	dashboardRepo DashboardRepository
}

// NewGetRecurrenceBreakdownUseCase creates a new GetRecurrenceBreakdownUseCase instance.
func NewGetRecurrenceBreakdownUseCase(dashboardRepo DashboardRepository) *GetRecurrenceBreakdownUseCase {
	return &GetRecurrenceBreakdownUseCase{
		dashboardRepo: dashboardRepo,
	}
}

type itemKey struct {
	description  string
	categoryType entity.CategoryType
}

// Execute builds the recurrence view. Items are ordered by decreasing total.
func (uc *GetRecurrenceBreakdownUseCase) Execute(ctx context.Context, input GetRecurrenceBreakdownInput) (*GetRecurrenceBreakdownOutput, error) {
	if err := validatePeriod(input.Period); err != nil {
		return nil, err
	}

	entries, err := uc.dashboardRepo.GetEntries(ctx, input.UserID, input.Period.StartDate, input.Period.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}

	output := &GetRecurrenceBreakdownOutput{Items: []RecurringItem{}}
	items := make(map[itemKey]*RecurringItem)
	var order []itemKey

	for _, e := range entries {
		if !e.Recurrence {
			output.OneOff.Add(e)
			continue
		}
		output.Recurring.Add(e)

		description := strings.TrimSpace(e.Description)
		if description == "" {
			description = e.CategoryLabel
		}
		key := itemKey{description: strings.ToLower(description), categoryType: e.CategoryType}
		item, ok := items[key]
		if !ok {
			item = &RecurringItem{Description: description, Type: e.CategoryType}
			items[key] = item
			order = append(order, key)
		}
		item.Total = item.Total.Add(e.Value)
		item.Count++
	}

	for _, key := range order {
		output.Items = append(output.Items, *items[key])
	}
	sort.SliceStable(output.Items, func(i, j int) bool {
		return output.Items[i].Total.GreaterThan(output.Items[j].Total)
	})

	return output, nil
}

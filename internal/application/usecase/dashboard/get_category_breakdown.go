package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// GetCategoryBreakdownInput represents the input for the per-category view.
type GetCategoryBreakdownInput struct {
	UserID uuid.UUID
	Period Period
}

// CategoryTotal is the sum of one category over the period.
type CategoryTotal struct {
	CategoryID uuid.UUID
	Label      string
	Type       entity.CategoryType
	Total      decimal.Decimal
	Count      int
	Percentage float64 // share of the total of the same type
}

// GetCategoryBreakdownOutput represents the output of the per-category view.
type GetCategoryBreakdownOutput struct {
	Categories []CategoryTotal
	Totals     Totals
}

// GetCategoryBreakdownUseCase totals entries per category.
type GetCategoryBreakdownUseCase struct {
	dashboardRepo DashboardRepository
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(dashboardRepo DashboardRepository) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{
		dashboardRepo: dashboardRepo,
	}
}

// Execute builds the breakdown, ordered by type and then by decreasing total.
func (uc *GetCategoryBreakdownUseCase) Execute(ctx context.Context, input GetCategoryBreakdownInput) (*GetCategoryBreakdownOutput, error) {
	if err := validatePeriod(input.Period); err != nil {
		return nil, err
	}

	entries, err := uc.dashboardRepo.GetEntries(ctx, input.UserID, input.Period.StartDate, input.Period.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}

	byCategory := make(map[uuid.UUID]*CategoryTotal)
	var totals Totals
	for _, e := range entries {
		totals.Add(e)

		ct, ok := byCategory[e.CategoryID]
		if !ok {
			ct = &CategoryTotal{
				CategoryID: e.CategoryID,
				Label:      e.CategoryLabel,
				Type:       e.CategoryType,
			}
			byCategory[e.CategoryID] = ct
		}
		ct.Total = ct.Total.Add(e.Value)
		ct.Count++
	}

	categories := make([]CategoryTotal, 0, len(byCategory))
	for _, ct := range byCategory {
		ct.Percentage = percentage(ct.Total, typeTotal(totals, ct.Type))
		categories = append(categories, *ct)
	}

	sort.Slice(categories, func(i, j int) bool {
		a, b := categories[i], categories[j]
		if a.Type != b.Type {
			return typeOrder(a.Type) < typeOrder(b.Type)
		}
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.Label < b.Label
	})

	return &GetCategoryBreakdownOutput{
		Categories: categories,
		Totals:     totals,
	}, nil
}

func typeTotal(t Totals, categoryType entity.CategoryType) decimal.Decimal {
	switch categoryType {
	case entity.CategoryTypeCost:
		return t.Cost
	case entity.CategoryTypeGain:
		return t.Gain
	default:
		return t.Investment
	}
}

func typeOrder(categoryType entity.CategoryType) int {
	for i, t := range entity.CategoryTypes {
		if t == categoryType {
			return i
		}
	}
	return len(entity.CategoryTypes)
}

// percentage returns part/whole*100 rounded to two places, 0 when whole is zero.
func percentage(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}

func validatePeriod(p Period) error {
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDateRange,
			"end date must not be before start date",
			domainerror.ErrInvalidArgument,
		)
	}
	return nil
}

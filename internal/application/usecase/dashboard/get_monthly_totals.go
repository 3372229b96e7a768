package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GetMonthlyTotalsInput represents the input for the per-month view.
type GetMonthlyTotalsInput struct {
	UserID uuid.UUID
	Period Period
}

// MonthTotal holds the totals of one calendar month.
type MonthTotal struct {
	Month time.Time // first day of the month, UTC
	Totals
}

// GetMonthlyTotalsOutput represents the output of the per-month view.
// Months without entries between the first and the last one are included.
type GetMonthlyTotalsOutput struct {
	Months []MonthTotal
}

// GetMonthlyTotalsUseCase totals entries per calendar month.
type GetMonthlyTotalsUseCase struct {
	dashboardRepo DashboardRepository
}

// NewGetMonthlyTotalsUseCase creates a new GetMonthlyTotalsUseCase instance.
func NewGetMonthlyTotalsUseCase(dashboardRepo DashboardRepository) *GetMonthlyTotalsUseCase {
	return &GetMonthlyTotalsUseCase{
		dashboardRepo: dashboardRepo,
	}
}

// Execute builds the monthly series.
func (uc *GetMonthlyTotalsUseCase) Execute(ctx context.Context, input GetMonthlyTotalsInput) (*GetMonthlyTotalsOutput, error) {
	if err := validatePeriod(input.Period); err != nil {
		return nil, err
	}

	entries, err := uc.dashboardRepo.GetEntries(ctx, input.UserID, input.Period.StartDate, input.Period.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}

	output := &GetMonthlyTotalsOutput{Months: []MonthTotal{}}
	if len(entries) == 0 {
		return output, nil
	}

	first, last := monthOf(entries[0].Date), monthOf(entries[0].Date)
	byMonth := make(map[time.Time]*Totals)
	for _, e := range entries {
		month := monthOf(e.Date)
		if month.Before(first) {
			first = month
		}
		if month.After(last) {
			last = month
		}
		totals, ok := byMonth[month]
		if !ok {
			totals = &Totals{}
			byMonth[month] = totals
		}
		totals.Add(e)
	}

	for month := first; !month.After(last); month = month.AddDate(0, 1, 0) {
		mt := MonthTotal{Month: month}
		if totals, ok := byMonth[month]; ok {
			mt.Totals = *totals
		}
		output.Months = append(output.Months, mt)
	}
	return output, nil
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

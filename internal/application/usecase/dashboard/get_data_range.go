package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GetDataRangeInput represents the input for getting data range.
type GetDataRangeInput struct {
	UserID uuid.UUID
}

// GetDataRangeOutput represents the output of getting data range.
type GetDataRangeOutput struct {
	OldestDate   *time.Time
	NewestDate   *time.Time
	TotalEntries int
	HasData      bool
}

// GetDataRangeUseCase handles getting the date range of user's ledger.
type GetDataRangeUseCase struct {
	dashboardRepo DashboardRepository
}

// NewGetDataRangeUseCase creates a new GetDataRangeUseCase instance.
func NewGetDataRangeUseCase(dashboardRepo DashboardRepository) *GetDataRangeUseCase {
	return &GetDataRangeUseCase{
		dashboardRepo: dashboardRepo,
	}
}

// Execute retrieves the date range of user's ledger.
func (uc *GetDataRangeUseCase) Execute(
	ctx context.Context,
	input GetDataRangeInput,
) (*GetDataRangeOutput, error) {
	dateRange, err := uc.dashboardRepo.GetDateRange(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get date range: %w", err)
	}

	hasData := dateRange.OldestDate != nil && dateRange.NewestDate != nil

	return &GetDataRangeOutput{
		OldestDate:   dateRange.OldestDate,
		NewestDate:   dateRange.NewestDate,
		TotalEntries: dateRange.TotalEntries,
		HasData:      hasData,
	}, nil
}

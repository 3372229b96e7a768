package investment

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valuation"
)

// MaxProjectionMonths bounds the length of a projection series.
const MaxProjectionMonths = 1200

// ValuationMode selects the month a valuation is computed for.
type ValuationMode string

const (
	// ValuationOnDate values the position on ValuationInput.Date.
	ValuationOnDate ValuationMode = "date"
	// ValuationNow values the position today.
	ValuationNow ValuationMode = "now"
	// ValuationAtHorizon values the position at the end of its planned duration.
	ValuationAtHorizon ValuationMode = "horizon"
)

// ValuationInput represents the input of a valuation query.
type ValuationInput struct {
	InvestmentID uuid.UUID
	UserID       uuid.UUID
	Mode         ValuationMode
	Date         time.Time
}

// ValuationOutput is the unrounded value of the position after Months periods.
type ValuationOutput struct {
	Months int
	Value  float64
	Cached bool
}

// GetValuationUseCase computes investment valuations, reading and filling
// the valuation cache when one is configured.
type GetValuationUseCase struct {
	investmentRepo adapter.InvestmentRepository
	cache          adapter.ValuationCache
	clock          adapter.Clock
}

// NewGetValuationUseCase creates a new GetValuationUseCase instance.
// cache may be nil; clock defaults to the system clock.
func NewGetValuationUseCase(
	investmentRepo adapter.InvestmentRepository,
	cache adapter.ValuationCache,
	clock adapter.Clock,
) *GetValuationUseCase {
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	return &GetValuationUseCase{
		investmentRepo: investmentRepo,
		cache:          cache,
		clock:          clock,
	}
}

// Execute performs the valuation query. The result is not rounded and may be
// non-finite for extreme month counts.
func (uc *GetValuationUseCase) Execute(ctx context.Context, input ValuationInput) (*ValuationOutput, error) {
	investment, err := findOwnedInvestment(ctx, uc.investmentRepo, input.InvestmentID, input.UserID)
	if err != nil {
		return nil, err
	}

	var months int
	switch input.Mode {
	case ValuationOnDate:
		if input.Date.IsZero() {
			return nil, domainerror.NewInvestmentError(
				domainerror.ErrCodeInvalidValuationDate,
				"date is required",
				domainerror.ErrInvalidArgument,
			)
		}
		months = investment.MonthsUntil(input.Date)
	case ValuationNow, "":
		months = investment.MonthsUntil(uc.clock.Now())
	case ValuationAtHorizon:
		months = investment.MonthsDuration
	default:
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidValuationDate,
			fmt.Sprintf("unknown valuation mode %q", input.Mode),
			domainerror.ErrInvalidArgument,
		)
	}

	key := adapter.ValuationKey{InvestmentID: investment.ID, Version: investment.UpdatedAt, Month: months}
	if value, ok := uc.cached(ctx, key); ok {
		return &ValuationOutput{Months: months, Value: value, Cached: true}, nil
	}

	value, err := investment.Gain(months)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil && !math.IsInf(value, 0) && !math.IsNaN(value) {
		if err := uc.cache.Set(ctx, key, value); err != nil {
			slog.WarnContext(ctx, "Failed to cache valuation", "investmentID", investment.ID, "error", err)
		}
	}

	return &ValuationOutput{Months: months, Value: value}, nil
}

func (uc *GetValuationUseCase) cached(ctx context.Context, key adapter.ValuationKey) (float64, bool) {
	if uc.cache == nil {
		return 0, false
	}
	value, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read cached valuation", "investmentID", key.InvestmentID, "error", err)
		return 0, false
	}
	return value, ok
}

// ProjectionInput represents the input of a projection query. Months
// defaults to the investment's planned duration when nil.
type ProjectionInput struct {
	InvestmentID uuid.UUID
	UserID       uuid.UUID
	Months       *int
}

// ProjectionOutput is the month-by-month value series of an investment.
type ProjectionOutput struct {
	Investment *entity.Investment
	Points     []valuation.Point
}

// GetProjectionUseCase builds valuation series for charting.
type GetProjectionUseCase struct {
	investmentRepo adapter.InvestmentRepository
}

// NewGetProjectionUseCase creates a new GetProjectionUseCase instance.
func NewGetProjectionUseCase(investmentRepo adapter.InvestmentRepository) *GetProjectionUseCase {
	return &GetProjectionUseCase{
		investmentRepo: investmentRepo,
	}
}

// Execute performs the projection query.
func (uc *GetProjectionUseCase) Execute(ctx context.Context, input ProjectionInput) (*ProjectionOutput, error) {
	investment, err := findOwnedInvestment(ctx, uc.investmentRepo, input.InvestmentID, input.UserID)
	if err != nil {
		return nil, err
	}

	months := investment.MonthsDuration
	if input.Months != nil {
		months = *input.Months
	}
	if months < -MaxProjectionMonths || months > MaxProjectionMonths {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidMonthsDuration,
			fmt.Sprintf("projection length must be within %d months", MaxProjectionMonths),
			domainerror.ErrInvalidArgument,
		)
	}

	points, err := investment.Projection(months)
	if err != nil {
		return nil, err
	}
	return &ProjectionOutput{Investment: investment, Points: points}, nil
}

// evictValuations drops cached valuations of an investment. A failed eviction
// leaves only entries keyed by an outdated UpdatedAt.
func evictValuations(ctx context.Context, cache adapter.ValuationCache, id uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Evict(ctx, id); err != nil {
		slog.WarnContext(ctx, "Failed to evict cached valuations", "investmentID", id, "error", err)
	}
}

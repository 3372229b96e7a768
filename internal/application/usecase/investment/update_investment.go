package investment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// UpdateInvestmentInput represents a field edit of an investment.
// Nil fields are left unchanged; the API sets exactly one per request.
type UpdateInvestmentInput struct {
	InvestmentID   uuid.UUID
	UserID         uuid.UUID
	Description    *string
	Value          *valueobject.Money
	Date           *time.Time
	Recurrence     *bool
	Rate           *float64
	Entrance       *valueobject.Money
	RecurrenceAdd  *valueobject.Money
	MonthsDuration *int
}

func (in UpdateInvestmentInput) empty() bool {
	return in.Description == nil && in.Value == nil && in.Date == nil && in.Recurrence == nil &&
		in.Rate == nil && in.Entrance == nil && in.RecurrenceAdd == nil && in.MonthsDuration == nil
}

// UpdateInvestmentOutput represents the output of investment update.
type UpdateInvestmentOutput struct {
	Investment *entity.Investment
}

// UpdateInvestmentUseCase handles investment update logic.
type UpdateInvestmentUseCase struct {
	investmentRepo adapter.InvestmentRepository
	cache          adapter.ValuationCache
	publisher      adapter.EventPublisher
}

// NewUpdateInvestmentUseCase creates a new UpdateInvestmentUseCase instance.
// cache may be nil.
func NewUpdateInvestmentUseCase(
	investmentRepo adapter.InvestmentRepository,
	cache adapter.ValuationCache,
	publisher adapter.EventPublisher,
) *UpdateInvestmentUseCase {
	return &UpdateInvestmentUseCase{
		investmentRepo: investmentRepo,
		cache:          cache,
		publisher:      publisher,
	}
}

// Execute performs the investment update.
func (uc *UpdateInvestmentUseCase) Execute(ctx context.Context, input UpdateInvestmentInput) (*UpdateInvestmentOutput, error) {
	if input.empty() {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeMissingInvestmentFields,
			"no field to update",
			domainerror.ErrInvalidArgument,
		)
	}

	investment, err := findOwnedInvestment(ctx, uc.investmentRepo, input.InvestmentID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := apply(investment, input); err != nil {
		return nil, err
	}

	if input.Value != nil || input.Date != nil {
		if err := guardOccurrence(ctx, uc.investmentRepo, investment); err != nil {
			return nil, err
		}
	}

	if err := uc.investmentRepo.Update(ctx, investment); err != nil {
		return nil, wrapPersistError("update", err)
	}

	evictValuations(ctx, uc.cache, investment.ID)
	adapter.PublishLogged(ctx, uc.publisher, event(adapter.EventUpdated, investment))

	return &UpdateInvestmentOutput{Investment: investment}, nil
}

func apply(investment *entity.Investment, input UpdateInvestmentInput) error {
	if input.Description != nil {
		if err := investment.SetDescription(*input.Description); err != nil {
			return err
		}
	}
	if input.Value != nil {
		if err := investment.SetValue(*input.Value); err != nil {
			return err
		}
	}
	if input.Date != nil {
		if err := investment.SetDate(*input.Date); err != nil {
			return err
		}
	}
	if input.Recurrence != nil {
		investment.SetRecurrence(*input.Recurrence)
	}
	if input.Rate != nil {
		if err := investment.SetRate(*input.Rate); err != nil {
			return err
		}
	}
	if input.Entrance != nil {
		if err := investment.SetEntrance(*input.Entrance); err != nil {
			return err
		}
	}
	if input.RecurrenceAdd != nil {
		if err := investment.SetRecurrenceAdd(*input.RecurrenceAdd); err != nil {
			return err
		}
	}
	if input.MonthsDuration != nil {
		if err := investment.SetMonthsDuration(*input.MonthsDuration); err != nil {
			return err
		}
	}
	return nil
}

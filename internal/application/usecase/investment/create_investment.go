package investment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// CreateInvestmentInput represents the input for investment creation.
type CreateInvestmentInput struct {
	UserID         uuid.UUID
	Description    string
	Value          valueobject.Money
	Date           time.Time
	Recurrence     bool
	Rate           float64
	Entrance       valueobject.Money
	RecurrenceAdd  valueobject.Money
	MonthsDuration int
}

// CreateInvestmentOutput represents the output of investment creation.
type CreateInvestmentOutput struct {
	Investment *entity.Investment
}

// CreateInvestmentUseCase handles investment creation logic. The investment
// is filed under the user's "Investment" category, created on first use.
type CreateInvestmentUseCase struct {
	investmentRepo adapter.InvestmentRepository
	resolver       adapter.CategoryResolver
	publisher      adapter.EventPublisher
}

// NewCreateInvestmentUseCase creates a new CreateInvestmentUseCase instance.
func NewCreateInvestmentUseCase(
	investmentRepo adapter.InvestmentRepository,
	resolver adapter.CategoryResolver,
	publisher adapter.EventPublisher,
) *CreateInvestmentUseCase {
	return &CreateInvestmentUseCase{
		investmentRepo: investmentRepo,
		resolver:       resolver,
		publisher:      publisher,
	}
}

// Execute performs the investment creation.
func (uc *CreateInvestmentUseCase) Execute(ctx context.Context, input CreateInvestmentInput) (*CreateInvestmentOutput, error) {
	investment, err := entity.NewInvestmentWithLookup(
		adapter.LookupWith(ctx, uc.resolver),
		input.Description,
		input.Value,
		input.Date,
		input.Recurrence,
		input.UserID,
		entity.InvestmentTerms{
			Rate:           input.Rate,
			Entrance:       input.Entrance,
			RecurrenceAdd:  input.RecurrenceAdd,
			MonthsDuration: input.MonthsDuration,
		},
	)
	if err != nil {
		return nil, err
	}

	if err := guardOccurrence(ctx, uc.investmentRepo, investment); err != nil {
		return nil, err
	}

	if err := uc.investmentRepo.Create(ctx, investment); err != nil {
		return nil, wrapPersistError("create", err)
	}

	adapter.PublishLogged(ctx, uc.publisher, event(adapter.EventCreated, investment))

	return &CreateInvestmentOutput{Investment: investment}, nil
}

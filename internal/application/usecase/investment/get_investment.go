package investment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// GetInvestmentInput represents the input for fetching one investment.
type GetInvestmentInput struct {
	InvestmentID uuid.UUID
	UserID       uuid.UUID
}

// GetInvestmentOutput represents the output of fetching one investment.
type GetInvestmentOutput struct {
	Investment *entity.Investment
}

// GetInvestmentUseCase returns an investment owned by the caller.
type GetInvestmentUseCase struct {
	investmentRepo adapter.InvestmentRepository
}

// NewGetInvestmentUseCase creates a new GetInvestmentUseCase instance.
func NewGetInvestmentUseCase(investmentRepo adapter.InvestmentRepository) *GetInvestmentUseCase {
	return &GetInvestmentUseCase{
		investmentRepo: investmentRepo,
	}
}

// Execute fetches the investment.
func (uc *GetInvestmentUseCase) Execute(ctx context.Context, input GetInvestmentInput) (*GetInvestmentOutput, error) {
	investment, err := findOwnedInvestment(ctx, uc.investmentRepo, input.InvestmentID, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetInvestmentOutput{Investment: investment}, nil
}

// ListInvestmentsInput represents the input for listing investments.
type ListInvestmentsInput struct {
	UserID uuid.UUID
	Filter entity.TransactionFilter
}

// ListInvestmentsOutput represents the output of listing investments.
type ListInvestmentsOutput struct {
	Investments []*entity.Investment
}

// ListInvestmentsUseCase handles investment listing logic.
type ListInvestmentsUseCase struct {
	investmentRepo adapter.InvestmentRepository
}

// NewListInvestmentsUseCase creates a new ListInvestmentsUseCase instance.
func NewListInvestmentsUseCase(investmentRepo adapter.InvestmentRepository) *ListInvestmentsUseCase {
	return &ListInvestmentsUseCase{
		investmentRepo: investmentRepo,
	}
}

// Execute performs the investment listing.
func (uc *ListInvestmentsUseCase) Execute(ctx context.Context, input ListInvestmentsInput) (*ListInvestmentsOutput, error) {
	if err := transaction.ValidateFilter(input.Filter); err != nil {
		return nil, err
	}

	investments, err := uc.investmentRepo.FindByUser(ctx, input.UserID, input.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	if investments == nil {
		investments = []*entity.Investment{}
	}
	return &ListInvestmentsOutput{Investments: investments}, nil
}

package investment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

// DeleteInvestmentInput represents the input for investment deletion.
type DeleteInvestmentInput struct {
	InvestmentID uuid.UUID
	UserID       uuid.UUID
}

// DeleteInvestmentOutput represents the output of investment deletion.
type DeleteInvestmentOutput struct {
	Success bool
}

// DeleteInvestmentUseCase handles investment deletion logic.
type DeleteInvestmentUseCase struct {
	investmentRepo adapter.InvestmentRepository
	cache          adapter.ValuationCache
	publisher      adapter.EventPublisher
}

// NewDeleteInvestmentUseCase creates a new DeleteInvestmentUseCase instance.
// cache may be nil.
func NewDeleteInvestmentUseCase(
	investmentRepo adapter.InvestmentRepository,
	cache adapter.ValuationCache,
	publisher adapter.EventPublisher,
) *DeleteInvestmentUseCase {
	return &DeleteInvestmentUseCase{
		investmentRepo: investmentRepo,
		cache:          cache,
		publisher:      publisher,
	}
}

// Execute performs the investment deletion.
func (uc *DeleteInvestmentUseCase) Execute(ctx context.Context, input DeleteInvestmentInput) (*DeleteInvestmentOutput, error) {
	investment, err := findOwnedInvestment(ctx, uc.investmentRepo, input.InvestmentID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := uc.investmentRepo.Delete(ctx, investment.ID); err != nil {
		return nil, fmt.Errorf("failed to delete investment: %w", err)
	}

	evictValuations(ctx, uc.cache, investment.ID)

	investment.UpdatedAt = time.Now().UTC()
	adapter.PublishLogged(ctx, uc.publisher, event(adapter.EventDeleted, investment))

	return &DeleteInvestmentOutput{Success: true}, nil
}

package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID uuid.UUID
	Filter entity.TransactionFilter
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
}

// ListTransactionsUseCase handles transaction listing logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if err := ValidateFilter(input.Filter); err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindByUser(ctx, input.UserID, input.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if transactions == nil {
		transactions = []*entity.Transaction{}
	}
	return &ListTransactionsOutput{Transactions: transactions}, nil
}

// ValidateFilter rejects date ranges that end before they begin.
func ValidateFilter(filter entity.TransactionFilter) error {
	if filter.Begin != nil && filter.Until != nil && filter.Until.Before(*filter.Begin) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"until must not be before begin",
			domainerror.ErrInvalidArgument,
		)
	}
	return nil
}

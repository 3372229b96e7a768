package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// GetTransactionInput represents the input for fetching one transaction.
type GetTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// GetTransactionOutput represents the output of fetching one transaction.
type GetTransactionOutput struct {
	Transaction *entity.Transaction
}

// GetTransactionUseCase returns a transaction owned by the caller.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(transactionRepo adapter.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute fetches the transaction.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, input GetTransactionInput) (*GetTransactionOutput, error) {
	transaction, err := findOwnedTransaction(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetTransactionOutput{Transaction: transaction}, nil
}

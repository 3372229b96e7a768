package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// UpdateTransactionInput represents a field edit of a transaction.
// Nil fields are left unchanged; the API sets exactly one per request.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Description   *string
	Value         *valueobject.Money
	Date          *time.Time
	CategoryID    *uuid.UUID
	Recurrence    *bool
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	publisher       adapter.EventPublisher
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	publisher adapter.EventPublisher,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		publisher:       publisher,
	}
}

// Execute performs the transaction update. Edits of value, date or category
// re-run the duplicate check, ignoring the transaction itself.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	if input.Description == nil && input.Value == nil && input.Date == nil && input.CategoryID == nil && input.Recurrence == nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"no field to update",
			domainerror.ErrInvalidArgument,
		)
	}

	transaction, err := findOwnedTransaction(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		if err := transaction.SetDescription(*input.Description); err != nil {
			return nil, err
		}
	}

	if input.Value != nil {
		if err := transaction.SetValue(*input.Value); err != nil {
			return nil, err
		}
	}

	if input.Date != nil {
		if err := transaction.SetDate(*input.Date); err != nil {
			return nil, err
		}
	}

	if input.CategoryID != nil {
		category, err := findCategory(ctx, uc.categoryRepo, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if err := transaction.SetCategory(category); err != nil {
			return nil, err
		}
	}

	if input.Recurrence != nil {
		transaction.SetRecurrence(*input.Recurrence)
	}

	if input.Value != nil || input.Date != nil || input.CategoryID != nil {
		if err := guardOccurrence(ctx, uc.transactionRepo, transaction); err != nil {
			return nil, err
		}
	}

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, wrapPersistError("update", err)
	}

	adapter.PublishLogged(ctx, uc.publisher, event(adapter.EventUpdated, transaction))

	return &UpdateTransactionOutput{Transaction: transaction}, nil
}

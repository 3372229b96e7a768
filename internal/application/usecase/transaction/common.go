// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// findOwnedTransaction loads a transaction and checks that userID owns it.
func findOwnedTransaction(ctx context.Context, repo adapter.TransactionRepository, id, userID uuid.UUID) (*entity.Transaction, error) {
	transaction, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if transaction.UserID != userID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to access this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}
	return transaction, nil
}

// findCategory loads a category referenced by id from a transaction request.
func findCategory(ctx context.Context, repo adapter.CategoryRepository, id uuid.UUID) (*entity.TransactionCategory, error) {
	category, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

// guardOccurrence rejects the transaction when another ledger entry of the
// same user shares its date, category and value.
func guardOccurrence(ctx context.Context, repo adapter.TransactionRepository, transaction *entity.Transaction) error {
	candidate := transaction.Occurrence()
	existing, err := repo.FindOccurrences(ctx, candidate.Key)
	if err != nil {
		return fmt.Errorf("failed to check duplicate transactions: %w", err)
	}
	if err := entity.GuardOccurrence(candidate, existing); err != nil {
		slog.InfoContext(ctx, "Rejected duplicate transaction",
			"userID", transaction.UserID,
			"categoryID", transaction.CategoryID,
			"date", transaction.Date.Format(entity.DateLayout),
			"value", transaction.Value.String())
		return err
	}
	return nil
}

// wrapPersistError keeps domain errors (the storage-level duplicate check)
// intact and wraps everything else.
func wrapPersistError(action string, err error) error {
	if errors.Is(err, domainerror.ErrDuplicateTransaction) {
		return err
	}
	return fmt.Errorf("failed to %s transaction: %w", action, err)
}

func event(eventType adapter.EventType, transaction *entity.Transaction) adapter.LedgerEvent {
	return adapter.LedgerEvent{
		Event:      eventType,
		EntityType: adapter.EntityTransaction,
		EntityID:   transaction.ID,
		UserID:     transaction.UserID,
		OccurredAt: transaction.UpdatedAt,
	}
}

// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction persistence operations.
// Returned transactions carry their category.
type TransactionRepository interface {
	// Create persists a new transaction and writes the assigned ID back onto it.
	// A violated occurrence unique index is reported as ErrDuplicateTransaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByUser retrieves the transactions of a user ordered by date.
	FindByUser(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) ([]*entity.Transaction, error)

	// FindOccurrences retrieves the transactions and investments sharing the
	// occurrence key.
	FindOccurrences(ctx context.Context, key entity.OccurrenceKey) ([]entity.Occurrence, error)

	// Update updates an existing transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// InvestmentRepository defines the interface for investment persistence operations.
// Returned investments carry their category.
type InvestmentRepository interface {
	// Create persists a new investment and writes the assigned ID back onto it.
	// A violated occurrence unique index is reported as ErrDuplicateTransaction.
	Create(ctx context.Context, investment *entity.Investment) error

	// FindByID retrieves an investment by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Investment, error)

	// FindByUser retrieves the investments of a user ordered by date.
	FindByUser(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) ([]*entity.Investment, error)

	// FindOccurrences retrieves the transactions and investments sharing the
	// occurrence key.
	FindOccurrences(ctx context.Context, key entity.OccurrenceKey) ([]entity.Occurrence, error)

	// Update updates an existing investment.
	Update(ctx context.Context, investment *entity.Investment) error

	// Delete removes an investment from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create persists a new category and writes the assigned ID back onto it.
	// A violated (user, label, type) unique index is reported as ErrCategoryLabelExists.
	Create(ctx context.Context, category *entity.TransactionCategory) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TransactionCategory, error)

	// FindByKey retrieves the category identified by (user, normalized label, type).
	FindByKey(ctx context.Context, key entity.CategoryKey) (*entity.TransactionCategory, error)

	// FindByUser retrieves the categories of a user, optionally filtered by type.
	FindByUser(ctx context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.TransactionCategory, error)

	// Update updates the label and type of an existing category.
	Update(ctx context.Context, category *entity.TransactionCategory) error

	// Delete removes a category from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountReferences returns how many transactions and investments reference the category.
	CountReferences(ctx context.Context, id uuid.UUID) (transactions int64, investments int64, err error)
}

// CategoryResolver finds a user's category by label and type, creating it when
// the user has none. Created reports whether a new category was stored.
type CategoryResolver interface {
	FindOrCreate(ctx context.Context, userID uuid.UUID, label string, categoryType entity.CategoryType) (category *entity.TransactionCategory, created bool, err error)
}

// LookupWith adapts resolver to the entity.CategoryLookup signature for ctx.
func LookupWith(ctx context.Context, resolver CategoryResolver) entity.CategoryLookup {
	return func(userID uuid.UUID, label string, categoryType entity.CategoryType) (*entity.TransactionCategory, error) {
		category, _, err := resolver.FindOrCreate(ctx, userID, label, categoryType)
		return category, err
	}
}

// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// findOwnedCategory loads a category and checks that userID owns it.
func findOwnedCategory(ctx context.Context, repo adapter.CategoryRepository, id, userID uuid.UUID) (*entity.TransactionCategory, error) {
	category, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	if category.UserID != userID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeNotAuthorizedCategory,
			"not authorized to access this category",
			domainerror.ErrNotAuthorizedToModifyCategory,
		)
	}
	return category, nil
}

// checkUnique runs the uniqueness predicate against the user's categories of the same type.
func checkUnique(ctx context.Context, repo adapter.CategoryRepository, candidate *entity.TransactionCategory) error {
	categoryType := candidate.Type
	existing, err := repo.FindByUser(ctx, candidate.UserID, &categoryType)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	return entity.CheckCategoryUnique(candidate, existing)
}

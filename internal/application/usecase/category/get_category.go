package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// GetCategoryInput represents the input for fetching one category.
type GetCategoryInput struct {
	CategoryID uuid.UUID
	UserID     uuid.UUID
}

// GetCategoryOutput represents the output of fetching one category.
type GetCategoryOutput struct {
	Category *entity.TransactionCategory
}

// GetCategoryUseCase returns a category owned by the caller.
type GetCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewGetCategoryUseCase creates a new GetCategoryUseCase instance.
func NewGetCategoryUseCase(categoryRepo adapter.CategoryRepository) *GetCategoryUseCase {
	return &GetCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute fetches the category.
func (uc *GetCategoryUseCase) Execute(ctx context.Context, input GetCategoryInput) (*GetCategoryOutput, error) {
	category, err := findOwnedCategory(ctx, uc.categoryRepo, input.CategoryID, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetCategoryOutput{Category: category}, nil
}

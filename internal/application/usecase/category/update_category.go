package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// UpdateCategoryInput represents the input for a category edit.
// Nil fields are left unchanged.
type UpdateCategoryInput struct {
	CategoryID uuid.UUID
	UserID     uuid.UUID
	Label      *string
	Type       *entity.CategoryType
}

// UpdateCategoryOutput represents the output of a category edit.
type UpdateCategoryOutput struct {
	Category *entity.TransactionCategory
}

// UpdateCategoryUseCase handles label and type edits.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	publisher    adapter.EventPublisher
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository, publisher adapter.EventPublisher) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// Execute performs the category edit.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	if input.Label == nil && input.Type == nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"label or type is required",
			domainerror.ErrInvalidArgument,
		)
	}

	category, err := findOwnedCategory(ctx, uc.categoryRepo, input.CategoryID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Label != nil {
		if err := category.Rename(*input.Label); err != nil {
			return nil, err
		}
	}

	if input.Type != nil && *input.Type != category.Type {
		if category.Type == entity.CategoryTypeInvestment {
			_, investments, err := uc.categoryRepo.CountReferences(ctx, category.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to count category references: %w", err)
			}
			if investments > 0 {
				return nil, domainerror.NewCategoryError(
					domainerror.ErrCodeCategoryTypeMismatch,
					"category is used by investments and must stay of type INVESTMENT",
					domainerror.ErrCategoryTypeMismatch,
				)
			}
		}
		if err := category.ChangeType(*input.Type); err != nil {
			return nil, err
		}
	}

	if err := checkUnique(ctx, uc.categoryRepo, category); err != nil {
		return nil, err
	}

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	adapter.PublishLogged(ctx, uc.publisher, adapter.LedgerEvent{
		Event:      adapter.EventUpdated,
		EntityType: adapter.EntityCategory,
		EntityID:   category.ID,
		UserID:     category.UserID,
		OccurredAt: category.UpdatedAt,
	})

	return &UpdateCategoryOutput{Category: category}, nil
}

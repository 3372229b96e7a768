package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Label  string
	Type   entity.CategoryType
	UserID uuid.UUID
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.TransactionCategory
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	publisher    adapter.EventPublisher
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository, publisher adapter.EventPublisher) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// Execute performs the category creation. A label that normalizes to an
// existing label of the same user and type is a conflict.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	category, err := entity.NewTransactionCategory(input.Label, input.Type, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := checkUnique(ctx, uc.categoryRepo, category); err != nil {
		return nil, err
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	adapter.PublishLogged(ctx, uc.publisher, adapter.LedgerEvent{
		Event:      adapter.EventCreated,
		EntityType: adapter.EntityCategory,
		EntityID:   category.ID,
		UserID:     category.UserID,
		OccurredAt: category.CreatedAt,
	})

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}

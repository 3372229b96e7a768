package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
	UserID     uuid.UUID
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct {
	Success bool
}

// DeleteCategoryUseCase handles category deletion logic.
// Categories still referenced by transactions or investments cannot be deleted.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	publisher    adapter.EventPublisher
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository, publisher adapter.EventPublisher) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	category, err := findOwnedCategory(ctx, uc.categoryRepo, input.CategoryID, input.UserID)
	if err != nil {
		return nil, err
	}

	transactions, investments, err := uc.categoryRepo.CountReferences(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count category references: %w", err)
	}
	if transactions+investments > 0 {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryInUse,
			fmt.Sprintf("category is referenced by %d transactions and %d investments", transactions, investments),
			domainerror.ErrCategoryInUse,
		)
	}

	if err := uc.categoryRepo.Delete(ctx, category.ID); err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	adapter.PublishLogged(ctx, uc.publisher, adapter.LedgerEvent{
		Event:      adapter.EventDeleted,
		EntityType: adapter.EntityCategory,
		EntityID:   category.ID,
		UserID:     category.UserID,
		OccurredAt: time.Now().UTC(),
	})

	return &DeleteCategoryOutput{Success: true}, nil
}

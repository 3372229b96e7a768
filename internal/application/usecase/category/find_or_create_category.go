package category

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

// FindOrCreateCategoryUseCase resolves a category by (user, label, type) and
// creates it when the user has none. It implements adapter.CategoryResolver.
type FindOrCreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	publisher    adapter.EventPublisher
}

// NewFindOrCreateCategoryUseCase creates a new FindOrCreateCategoryUseCase instance.
func NewFindOrCreateCategoryUseCase(categoryRepo adapter.CategoryRepository, publisher adapter.EventPublisher) *FindOrCreateCategoryUseCase {
	return &FindOrCreateCategoryUseCase{
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

var _ adapter.CategoryResolver = (*FindOrCreateCategoryUseCase)(nil)

// FindOrCreate returns the matching category and whether it had to be created.
func (uc *FindOrCreateCategoryUseCase) FindOrCreate(
	ctx context.Context,
	userID uuid.UUID,
	label string,
	categoryType entity.CategoryType,
) (*entity.TransactionCategory, bool, error) {
	candidate, err := entity.NewTransactionCategory(label, categoryType, userID)
	if err != nil {
		return nil, false, err
	}

	existing, err := uc.find(ctx, candidate.Key())
	if err != nil || existing != nil {
		return existing, false, err
	}

	if err := uc.categoryRepo.Create(ctx, candidate); err != nil {
		// Lost a race against a concurrent create of the same key.
		if errors.Is(err, domainerror.ErrCategoryLabelExists) {
			existing, findErr := uc.find(ctx, candidate.Key())
			if findErr == nil && existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, fmt.Errorf("failed to create category: %w", err)
	}

	slog.InfoContext(ctx, "Created category on demand",
		"userID", userID,
		"label", candidate.Label,
		"type", candidate.Type)

	adapter.PublishLogged(ctx, uc.publisher, adapter.LedgerEvent{
		Event:      adapter.EventCreated,
		EntityType: adapter.EntityCategory,
		EntityID:   candidate.ID,
		UserID:     userID,
		OccurredAt: candidate.CreatedAt,
	})

	return candidate, true, nil
}

func (uc *FindOrCreateCategoryUseCase) find(ctx context.Context, key entity.CategoryKey) (*entity.TransactionCategory, error) {
	category, err := uc.categoryRepo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

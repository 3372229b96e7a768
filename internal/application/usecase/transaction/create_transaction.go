package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// CreateTransactionInput represents the input for transaction creation.
// The category is given either by CategoryID or by CategoryLabel and
// CategoryType, in which case it is created when the user has none.
type CreateTransactionInput struct {
	UserID        uuid.UUID
	Description   string
	Value         valueobject.Money
	Date          time.Time
	Recurrence    bool
	CategoryID    *uuid.UUID
	CategoryLabel string
	CategoryType  entity.CategoryType
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction     *entity.Transaction
	CategoryCreated bool
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	resolver        adapter.CategoryResolver
	publisher       adapter.EventPublisher
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	resolver adapter.CategoryResolver,
	publisher adapter.EventPublisher,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		resolver:        resolver,
		publisher:       publisher,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	var (
		category *entity.TransactionCategory
		created  bool
		err      error
	)

	switch {
	case input.CategoryID != nil:
		category, err = findCategory(ctx, uc.categoryRepo, *input.CategoryID)
	case input.CategoryLabel != "":
		category, created, err = uc.resolver.FindOrCreate(ctx, input.UserID, input.CategoryLabel, input.CategoryType)
	default:
		err = domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionCategory,
			"categoryId or category label and type are required",
			domainerror.ErrInvalidArgument,
		)
	}
	if err != nil {
		return nil, err
	}

	transaction, err := entity.NewTransaction(
		input.Description,
		category,
		input.Value,
		input.Date,
		input.Recurrence,
		input.UserID,
	)
	if err != nil {
		return nil, err
	}

	if err := guardOccurrence(ctx, uc.transactionRepo, transaction); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, wrapPersistError("create", err)
	}

	adapter.PublishLogged(ctx, uc.publisher, event(adapter.EventCreated, transaction))

	return &CreateTransactionOutput{
		Transaction:     transaction,
		CategoryCreated: created,
	}, nil
}

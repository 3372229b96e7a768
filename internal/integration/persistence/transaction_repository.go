// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	if err := transaction.Validate(); err != nil {
		return err
	}
	txModel := model.TransactionFromEntity(transaction)
	if err := r.db.WithContext(ctx).Omit("Category").Create(txModel).Error; err != nil {
		if isUniqueViolation(err) {
			return entity.NewDuplicateTransactionError()
		}
		return err
	}
	transaction.ID = txModel.ID
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var txModel model.TransactionModel
	result := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&txModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return txModel.ToEntity(), nil
}

// FindByUser retrieves the transactions of a user ordered by date.
func (r *transactionRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) ([]*entity.Transaction, error) {
	query := applyFilter(r.db.WithContext(ctx).Preload("Category").Where("user_id = ?", userID), filter)

	var txModels []model.TransactionModel
	if err := query.Order("date ASC, created_at ASC").Find(&txModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, len(txModels))
	for i := range txModels {
		transactions[i] = txModels[i].ToEntity()
	}
	return transactions, nil
}

// FindOccurrences retrieves the ledger entries sharing the occurrence key.
func (r *transactionRepository) FindOccurrences(ctx context.Context, key entity.OccurrenceKey) ([]entity.Occurrence, error) {
	return findOccurrences(r.db.WithContext(ctx), key)
}

// Update updates an existing transaction in the database.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	if err := transaction.Validate(); err != nil {
		return err
	}
	txModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Omit("Category").Save(txModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return entity.NewDuplicateTransactionError()
		}
		return result.Error
	}
	return nil
}

// Delete removes a transaction from the database.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// applyFilter narrows a transactions or investments query.
func applyFilter(query *gorm.DB, filter entity.TransactionFilter) *gorm.DB {
	if filter.Begin != nil {
		query = query.Where("date >= ?", entity.CalendarDate(*filter.Begin))
	}
	if filter.Until != nil {
		query = query.Where("date <= ?", entity.CalendarDate(*filter.Until))
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Recurrence != nil {
		query = query.Where("recurrence = ?", *filter.Recurrence)
	}
	return query
}

// occurrenceQuery selects the rows sharing an occurrence key.
func occurrenceQuery(query *gorm.DB, key entity.OccurrenceKey) *gorm.DB {
	return query.Where(
		"user_id = ? AND date = ? AND category_id = ? AND value = ?",
		key.UserID, entity.CalendarDate(key.Date), key.CategoryID, key.Value.Decimal(),
	)
}

// findOccurrences collects the transactions and investments sharing key.
// Investments are ledger entries too, so one guard covers both tables.
func findOccurrences(db *gorm.DB, key entity.OccurrenceKey) ([]entity.Occurrence, error) {
	var txModels []model.TransactionModel
	if err := occurrenceQuery(db, key).Find(&txModels).Error; err != nil {
		return nil, err
	}

	var invModels []model.InvestmentModel
	if err := occurrenceQuery(db, key).Find(&invModels).Error; err != nil {
		return nil, err
	}

	occurrences := make([]entity.Occurrence, 0, len(txModels)+len(invModels))
	for i := range txModels {
		occurrences = append(occurrences, txModels[i].ToEntity().Occurrence())
	}
	for i := range invModels {
		occurrences = append(occurrences, invModels[i].ToEntity().Occurrence())
	}
	return occurrences, nil
}

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

// investmentRepository implements the adapter.InvestmentRepository interface.
type investmentRepository struct {
	db *gorm.DB
}

// NewInvestmentRepository creates a new investment repository instance.
func NewInvestmentRepository(db *gorm.DB) adapter.InvestmentRepository {
	return &investmentRepository{
		db: db,
	}
}

// Create creates a new investment in the database.
func (r *investmentRepository) Create(ctx context.Context, investment *entity.Investment) error {
	if err := investment.Validate(); err != nil {
		return err
	}
	invModel := model.InvestmentFromEntity(investment)
	if err := r.db.WithContext(ctx).Omit("Category").Create(invModel).Error; err != nil {
		if isUniqueViolation(err) {
			return entity.NewDuplicateTransactionError()
		}
		return err
	}
	investment.ID = invModel.ID
	return nil
}

// FindByID retrieves an investment by its ID.
func (r *investmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Investment, error) {
	var invModel model.InvestmentModel
	result := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&invModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInvestmentNotFound
		}
		return nil, result.Error
	}
	return invModel.ToEntity(), nil
}

// FindByUser retrieves the investments of a user ordered by date.
func (r *investmentRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) ([]*entity.Investment, error) {
	query := applyFilter(r.db.WithContext(ctx).Preload("Category").Where("user_id = ?", userID), filter)

	var invModels []model.InvestmentModel
	if err := query.Order("date ASC, created_at ASC").Find(&invModels).Error; err != nil {
		return nil, err
	}

	investments := make([]*entity.Investment, len(invModels))
	for i := range invModels {
		investments[i] = invModels[i].ToEntity()
	}
	return investments, nil
}

// FindOccurrences retrieves the ledger entries sharing the occurrence key.
func (r *investmentRepository) FindOccurrences(ctx context.Context, key entity.OccurrenceKey) ([]entity.Occurrence, error) {
	return findOccurrences(r.db.WithContext(ctx), key)
}

// Update updates an existing investment in the database.
func (r *investmentRepository) Update(ctx context.Context, investment *entity.Investment) error {
	if err := investment.Validate(); err != nil {
		return err
	}
	invModel := model.InvestmentFromEntity(investment)
	result := r.db.WithContext(ctx).Omit("Category").Save(invModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return entity.NewDuplicateTransactionError()
		}
		return result.Error
	}
	return nil
}

// Delete removes an investment from the database.
func (r *investmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.InvestmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInvestmentNotFound
	}
	return nil
}

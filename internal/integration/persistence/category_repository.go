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

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.TransactionCategory) error {
	categoryModel := model.CategoryFromEntity(category)
	if err := r.db.WithContext(ctx).Create(categoryModel).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryLabelExists,
				"a category with this label and type already exists",
				domainerror.ErrCategoryLabelExists,
			)
		}
		return err
	}
	category.ID = categoryModel.ID
	return nil
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TransactionCategory, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindByKey retrieves the category identified by (user, normalized label, type).
func (r *categoryRepository) FindByKey(ctx context.Context, key entity.CategoryKey) (*entity.TransactionCategory, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND label = ? AND type = ?", key.UserID, entity.NormalizeLabel(key.Label), string(key.Type)).
		First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindByUser retrieves the categories of a user, optionally filtered by type.
func (r *categoryRepository) FindByUser(ctx context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.TransactionCategory, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if categoryType != nil {
		query = query.Where("type = ?", string(*categoryType))
	}

	var categoryModels []model.CategoryModel
	if err := query.Order("label ASC, type ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categories := make([]*entity.TransactionCategory, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// Update updates the label and type of an existing category.
func (r *categoryRepository) Update(ctx context.Context, category *entity.TransactionCategory) error {
	result := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("id = ?", category.ID).
		Updates(map[string]any{
			"label":      entity.NormalizeLabel(category.Label),
			"type":       string(category.Type),
			"updated_at": category.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryLabelExists,
				"a category with this label and type already exists",
				domainerror.ErrCategoryLabelExists,
			)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}

// Delete removes a category from the database.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}

// CountReferences returns how many transactions and investments reference the category.
func (r *categoryRepository) CountReferences(ctx context.Context, id uuid.UUID) (int64, int64, error) {
	var transactions, investments int64
	if err := r.db.WithContext(ctx).Model(&model.TransactionModel{}).Where("category_id = ?", id).Count(&transactions).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&model.InvestmentModel{}).Where("category_id = ?", id).Count(&investments).Error; err != nil {
		return 0, 0, err
	}
	return transactions, investments, nil
}

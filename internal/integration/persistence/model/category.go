// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CategoryModel represents the transaction_categories table in the database.
// (user_id, label, type) is unique; label is stored normalized.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_categories_user_label_type,priority:1"`
	Label     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_categories_user_label_type,priority:2"`
	Type      string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_categories_user_label_type,priority:3"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "transaction_categories"
}

// BeforeCreate assigns an ID to categories that do not have one yet.
func (m *CategoryModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ToEntity converts a CategoryModel to a domain TransactionCategory entity.
func (m *CategoryModel) ToEntity() *entity.TransactionCategory {
	return &entity.TransactionCategory{
		ID:        m.ID,
		Label:     m.Label,
		Type:      entity.CategoryType(m.Type),
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain TransactionCategory entity.
func CategoryFromEntity(c *entity.TransactionCategory) *CategoryModel {
	return &CategoryModel{
		ID:        c.ID,
		UserID:    c.UserID,
		Label:     entity.NormalizeLabel(c.Label),
		Type:      string(c.Type),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

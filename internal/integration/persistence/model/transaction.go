// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// TransactionModel represents the transactions table in the database.
// The occurrence tuple (user_id, date, category_id, value) is unique.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_transactions_occurrence,priority:1"`
	Date        time.Time       `gorm:"type:date;not null;uniqueIndex:idx_transactions_occurrence,priority:2"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_transactions_occurrence,priority:3"`
	Value       decimal.Decimal `gorm:"type:decimal(15,2);not null;uniqueIndex:idx_transactions_occurrence,priority:4"`
	Description string          `gorm:"type:varchar(255);not null"`
	Recurrence  bool            `gorm:"not null;default:false"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// BeforeCreate assigns an ID to transactions that do not have one yet.
func (m *TransactionModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	t := &entity.Transaction{
		ID:          m.ID,
		Description: m.Description,
		CategoryID:  m.CategoryID,
		Value:       valueobject.NewMoney(m.Value),
		Date:        entity.CalendarDate(m.Date),
		Recurrence:  m.Recurrence,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Category != nil {
		t.Category = m.Category.ToEntity()
	}
	return t
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(t *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:          t.ID,
		UserID:      t.UserID,
		Date:        entity.CalendarDate(t.Date),
		CategoryID:  t.CategoryID,
		Value:       t.Value.Decimal(),
		Description: t.Description,
		Recurrence:  t.Recurrence,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

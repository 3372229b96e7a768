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

// InvestmentModel represents the investments table in the database.
type InvestmentModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_investments_occurrence,priority:1"`
	Date           time.Time       `gorm:"type:date;not null;uniqueIndex:idx_investments_occurrence,priority:2"`
	CategoryID     uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_investments_occurrence,priority:3"`
	Value          decimal.Decimal `gorm:"type:decimal(15,2);not null;uniqueIndex:idx_investments_occurrence,priority:4"`
	Description    string          `gorm:"type:varchar(255);not null"`
	Recurrence     bool            `gorm:"not null;default:false"`
	Rate           float64         `gorm:"type:double precision;not null"`
	Entrance       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	RecurrenceAdd  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	MonthsDuration int             `gorm:"not null;default:0"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for the InvestmentModel.
func (InvestmentModel) TableName() string {
	return "investments"
}

// BeforeCreate assigns an ID to investments that do not have one yet.
func (m *InvestmentModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ToEntity converts an InvestmentModel to a domain Investment entity.
func (m *InvestmentModel) ToEntity() *entity.Investment {
	inv := &entity.Investment{
		Transaction: entity.Transaction{
			ID:          m.ID,
			Description: m.Description,
			CategoryID:  m.CategoryID,
			Value:       valueobject.NewMoney(m.Value),
			Date:        entity.CalendarDate(m.Date),
			Recurrence:  m.Recurrence,
			UserID:      m.UserID,
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
		},
		Rate:           m.Rate,
		Entrance:       valueobject.NewMoney(m.Entrance),
		RecurrenceAdd:  valueobject.NewMoney(m.RecurrenceAdd),
		MonthsDuration: m.MonthsDuration,
	}
	if m.Category != nil {
		inv.Category = m.Category.ToEntity()
	}
	return inv
}

// InvestmentFromEntity creates an InvestmentModel from a domain Investment entity.
func InvestmentFromEntity(inv *entity.Investment) *InvestmentModel {
	return &InvestmentModel{
		ID:             inv.ID,
		UserID:         inv.UserID,
		Date:           entity.CalendarDate(inv.Date),
		CategoryID:     inv.CategoryID,
		Value:          inv.Value.Decimal(),
		Description:    inv.Description,
		Recurrence:     inv.Recurrence,
		Rate:           inv.Rate,
		Entrance:       inv.Entrance.Decimal(),
		RecurrenceAdd:  inv.RecurrenceAdd.Decimal(),
		MonthsDuration: inv.MonthsDuration,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

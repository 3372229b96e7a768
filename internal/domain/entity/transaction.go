// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// DefaultDescription is stored when a transaction is created without a description.
const DefaultDescription = " "

// MaxDescriptionLength is the maximum length of a transaction description.
const MaxDescriptionLength = 255

// Transaction is a dated monetary movement tied to a category.
// The direction of the movement is given by the category type; Value is
// always a non-negative magnitude.
type Transaction struct {
	ID          uuid.UUID // uuid.Nil until persisted
	Description string
	Category    *TransactionCategory
	CategoryID  uuid.UUID
	Value       valueobject.Money
	Date        time.Time
	Recurrence  bool
	UserID      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new, not yet persisted transaction.
// The category must be persisted and belong to userID.
func NewTransaction(
	description string,
	category *TransactionCategory,
	value valueobject.Money,
	date time.Time,
	recurrence bool,
	userID uuid.UUID,
) (*Transaction, error) {
	if userID == uuid.Nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionOwner,
			"transaction owner is required",
			domainerror.ErrInvalidArgument,
		)
	}

	now := time.Now().UTC()
	t := &Transaction{
		UserID:     userID,
		Recurrence: recurrence,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := t.SetCategory(category); err != nil {
		return nil, err
	}
	if err := t.SetDescription(description); err != nil {
		return nil, err
	}
	if err := t.SetValue(value); err != nil {
		return nil, err
	}
	if err := t.SetDate(date); err != nil {
		return nil, err
	}

	t.UpdatedAt = now
	return t, nil
}

// SetDescription replaces the description. An empty description becomes DefaultDescription.
func (t *Transaction) SetDescription(description string) error {
	if description == "" {
		description = DefaultDescription
	}
	if len([]rune(description)) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			"description must be at most 255 characters",
			domainerror.ErrInvalidArgument,
		)
	}
	t.Description = description
	t.touch()
	return nil
}

// SetValue replaces the value. The value is a magnitude, so it must be
// positive once rounded to cents.
func (t *Transaction) SetValue(value valueobject.Money) error {
	if !value.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionValue,
			"value must be greater than zero",
			domainerror.ErrInvalidArgument,
		)
	}
	t.Value = value
	t.touch()
	return nil
}

// SetDate replaces the date, keeping only its calendar day.
func (t *Transaction) SetDate(date time.Time) error {
	if date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidArgument,
		)
	}
	t.Date = CalendarDate(date)
	t.touch()
	return nil
}

// SetCategory moves the transaction to another category of the same owner.
func (t *Transaction) SetCategory(category *TransactionCategory) error {
	if category == nil || !category.IsPersisted() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionCategory,
			"transaction category is required",
			domainerror.ErrInvalidArgument,
		)
	}
	if category.UserID != t.UserID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnOwnerMismatch,
			"category belongs to another user",
			domainerror.ErrOwnerMismatch,
		)
	}
	t.Category = category
	t.CategoryID = category.ID
	t.touch()
	return nil
}

// SetRecurrence replaces the recurrence flag.
func (t *Transaction) SetRecurrence(recurrence bool) {
	t.Recurrence = recurrence
	t.touch()
}

// Validate re-checks every invariant of a transaction built outside NewTransaction,
// e.g. one loaded from storage and edited in place.
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionOwner,
			"transaction owner is required",
			domainerror.ErrInvalidArgument,
		)
	}
	if t.Category != nil && t.Category.UserID != t.UserID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnOwnerMismatch,
			"category belongs to another user",
			domainerror.ErrOwnerMismatch,
		)
	}
	if t.CategoryID == uuid.Nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionCategory,
			"transaction category is required",
			domainerror.ErrInvalidArgument,
		)
	}
	if !t.Value.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionValue,
			"value must be greater than zero",
			domainerror.ErrInvalidArgument,
		)
	}
	if t.Date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidArgument,
		)
	}
	return nil
}

// IsPersisted reports whether the transaction has been assigned an id.
func (t *Transaction) IsPersisted() bool {
	return t.ID != uuid.Nil
}

// Type returns the type of the transaction's category, or "" if it is not loaded.
func (t *Transaction) Type() CategoryType {
	if t.Category == nil {
		return ""
	}
	return t.Category.Type
}

func (t *Transaction) touch() {
	t.UpdatedAt = time.Now().UTC()
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	Begin      *time.Time
	Until      *time.Time
	CategoryID *uuid.UUID
	Recurrence *bool
}

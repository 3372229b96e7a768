package entity

import (
	"time"

	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// OccurrenceKey is the tuple two submissions of the same movement share.
// Distinct movements that share it are indistinguishable and rejected as well.
type OccurrenceKey struct {
	UserID     uuid.UUID
	Date       time.Time
	CategoryID uuid.UUID
	Value      valueobject.Money
}

// Occurrence is a persisted (or candidate) entry identified by its key.
type Occurrence struct {
	ID  uuid.UUID
	Key OccurrenceKey
}

// OccurrenceKey returns the duplicate-detection key of the transaction.
func (t *Transaction) OccurrenceKey() OccurrenceKey {
	return OccurrenceKey{
		UserID:     t.UserID,
		Date:       CalendarDate(t.Date),
		CategoryID: t.CategoryID,
		Value:      t.Value,
	}
}

// Occurrence returns the transaction as an occurrence.
func (t *Transaction) Occurrence() Occurrence {
	return Occurrence{ID: t.ID, Key: t.OccurrenceKey()}
}

// SameOccurrence reports whether a and b describe the same movement.
func SameOccurrence(a, b OccurrenceKey) bool {
	return a.UserID == b.UserID &&
		CalendarDate(a.Date).Equal(CalendarDate(b.Date)) &&
		a.CategoryID == b.CategoryID &&
		a.Value.Equal(b.Value)
}

// GuardOccurrence fails with a duplicate error when any entry of existing,
// other than candidate itself, has the same key as candidate.
func GuardOccurrence(candidate Occurrence, existing []Occurrence) error {
	for _, other := range existing {
		if candidate.ID != uuid.Nil && other.ID == candidate.ID {
			continue
		}
		if SameOccurrence(candidate.Key, other.Key) {
			return NewDuplicateTransactionError()
		}
	}
	return nil
}

// NewDuplicateTransactionError returns the error reported for a guard hit.
func NewDuplicateTransactionError() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeDuplicateTransaction,
		"a transaction with the same date, category and value already exists",
		domainerror.ErrDuplicateTransaction,
	)
}

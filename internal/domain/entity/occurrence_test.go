package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

func TestGuardOccurrence(t *testing.T) {
	userID := uuid.New()
	food := persistedCategory(t, "Food", CategoryTypeCost, userID)
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	first, err := NewTransaction("market", food, mustMoney(t, "50"), date, false, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first.ID = uuid.New()
	existing := []Occurrence{first.Occurrence()}

	t.Run("second identical submission is a duplicate", func(t *testing.T) {
		second, _ := NewTransaction("market again", food, mustMoney(t, "50.00"), date.Add(9*time.Hour), false, userID)
		err := GuardOccurrence(second.Occurrence(), existing)
		if !errors.Is(err, domainerror.ErrDuplicateTransaction) {
			t.Fatalf("error = %v, want ErrDuplicateTransaction", err)
		}
	})

	t.Run("different value passes", func(t *testing.T) {
		other, _ := NewTransaction("market", food, mustMoney(t, "50.01"), date, false, userID)
		if err := GuardOccurrence(other.Occurrence(), existing); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("different day passes", func(t *testing.T) {
		other, _ := NewTransaction("market", food, mustMoney(t, "50"), date.AddDate(0, 0, 1), false, userID)
		if err := GuardOccurrence(other.Occurrence(), existing); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("an entry is not a duplicate of itself", func(t *testing.T) {
		if err := GuardOccurrence(first.Occurrence(), existing); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

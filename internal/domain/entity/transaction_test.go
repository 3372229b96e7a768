package entity

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

func mustMoney(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.ParseMoney(s)
	if err != nil {
		t.Fatalf("ParseMoney(%q): %v", s, err)
	}
	return m
}

func TestNewTransaction(t *testing.T) {
	userID := uuid.New()
	category := persistedCategory(t, "Food", CategoryTypeCost, userID)
	date := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	txn, err := NewTransaction("", category, mustMoney(t, "19.995"), date, true, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if txn.Value.String() != "20.00" {
		t.Errorf("Value = %s, want 20.00", txn.Value)
	}
	if txn.Description != DefaultDescription {
		t.Errorf("Description = %q, want a single space", txn.Description)
	}
	if !txn.Date.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v, want the calendar day", txn.Date)
	}
	if txn.CategoryID != category.ID || txn.Type() != CategoryTypeCost {
		t.Errorf("category not attached: %+v", txn)
	}
	if txn.IsPersisted() {
		t.Error("new transaction should not have an id")
	}
	if err := txn.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestNewTransactionErrors(t *testing.T) {
	userID := uuid.New()
	category := persistedCategory(t, "Food", CategoryTypeCost, userID)
	foreign := persistedCategory(t, "Food", CategoryTypeCost, uuid.New())
	unsaved, _ := NewTransactionCategory("Food", CategoryTypeCost, userID)
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		description string
		category    *TransactionCategory
		value       string
		date        time.Time
		userID      uuid.UUID
		kind        error
	}{
		{name: "category of another user", category: foreign, value: "10", date: date, userID: userID, kind: domainerror.ErrOwnerMismatch},
		{name: "negative value", category: category, value: "-1", date: date, userID: userID, kind: domainerror.ErrInvalidArgument},
		{name: "zero value", category: category, value: "0", date: date, userID: userID, kind: domainerror.ErrInvalidArgument},
		{name: "value rounding to zero", category: category, value: "0.004", date: date, userID: userID, kind: domainerror.ErrInvalidArgument},
		{name: "missing date", category: category, value: "10", userID: userID, kind: domainerror.ErrInvalidArgument},
		{name: "missing category", value: "10", date: date, userID: userID, kind: domainerror.ErrInvalidArgument},
		{name: "unsaved category", category: unsaved, value: "10", date: date, userID: userID, kind: domainerror.ErrInvalidArgument},
		{name: "missing owner", category: category, value: "10", date: date, userID: uuid.Nil, kind: domainerror.ErrInvalidArgument},
		{name: "description too long", description: strings.Repeat("x", 256), category: category, value: "10", date: date, userID: userID, kind: domainerror.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTransaction(tt.description, tt.category, mustMoney(t, tt.value), tt.date, false, tt.userID)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("error = %v, want %v", err, tt.kind)
			}
			var txnErr *domainerror.TransactionError
			if !errors.As(err, &txnErr) {
				t.Errorf("error should be a TransactionError, got %T", err)
			}
		})
	}
}

func TestTransactionSetters(t *testing.T) {
	userID := uuid.New()
	food := persistedCategory(t, "Food", CategoryTypeCost, userID)
	rent := persistedCategory(t, "Rent", CategoryTypeCost, userID)

	txn, err := NewTransaction("lunch", food, mustMoney(t, "12.5"), time.Now(), false, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := txn.SetValue(mustMoney(t, "3.333")); err != nil || txn.Value.String() != "3.33" {
		t.Errorf("SetValue: %v, value %s", err, txn.Value)
	}
	if err := txn.SetCategory(rent); err != nil || txn.CategoryID != rent.ID {
		t.Errorf("SetCategory: %v", err)
	}
	if err := txn.SetCategory(persistedCategory(t, "Rent", CategoryTypeCost, uuid.New())); !errors.Is(err, domainerror.ErrOwnerMismatch) {
		t.Errorf("SetCategory foreign: %v", err)
	}
	if txn.CategoryID != rent.ID {
		t.Error("failed SetCategory must not change the category")
	}
	if err := txn.SetDescription(""); err != nil || txn.Description != DefaultDescription {
		t.Errorf("SetDescription: %v, %q", err, txn.Description)
	}
	txn.SetRecurrence(true)
	if !txn.Recurrence {
		t.Error("SetRecurrence did not apply")
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-02-29", "2024-02-29T13:45:00Z", " 2024-02-29 "} {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v", in, got)
		}
	}
	for _, in := range []string{"2023-02-29", "15/03/2024", ""} {
		if _, err := ParseDate(in); !errors.Is(err, domainerror.ErrInvalidArgument) {
			t.Errorf("ParseDate(%q) error = %v", in, err)
		}
	}
}

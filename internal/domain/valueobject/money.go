// Package valueobject contains domain value objects for the Finance Tracker system.
package valueobject

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

const (
	// MoneyScale is the number of fraction digits kept by Money.
	MoneyScale = 2
	// MaxMoneyDigits is the number of integer digits an amount may have.
	MaxMoneyDigits = 13
)

var (
	half       = decimal.New(5, -1)
	moneyLimit = decimal.New(1, MaxMoneyDigits)
)

// Money is a decimal amount with exactly two fraction digits.
// Every constructor rounds to the nearest cent (half-up), so a Money value
// is never observed unrounded.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney rounds d to cents.
func NewMoney(d decimal.Decimal) Money {
	return Money{amount: RoundToCents(d)}
}

// ParseMoney parses a numeric string ("19.995", "1e3", " 12 ") and rounds it to cents.
// Amounts must stay below 10^MaxMoneyDigits in magnitude.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmt.Errorf("%w: amount is required", domainerror.ErrInvalidArgument)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: amount %q is not a finite number", domainerror.ErrInvalidArgument, s)
	}
	d, err = checkMagnitude(d)
	if err != nil {
		return Money{}, err
	}
	m := NewMoney(d)
	if m.amount.Abs().Cmp(moneyLimit) >= 0 {
		return Money{}, fmt.Errorf("%w: amount must be below 1e%d", domainerror.ErrInvalidArgument, MaxMoneyDigits)
	}
	return m, nil
}

// checkMagnitude rejects amounts that do not fit a decimal(15,2) column.
// It only inspects the digit count and exponent, so huge exponents are
// refused before any arithmetic expands them. Amounts too small to reach
// half a cent come back as zero.
func checkMagnitude(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsZero() {
		return decimal.Zero, nil
	}
	// |d| lies in [10^(order-1), 10^order).
	order := int64(d.NumDigits()) + int64(d.Exponent())
	if order > MaxMoneyDigits {
		return decimal.Zero, fmt.Errorf("%w: amount must be below 1e%d", domainerror.ErrInvalidArgument, MaxMoneyDigits)
	}
	if order <= -(MoneyScale + 1) {
		return decimal.Zero, nil
	}
	return d, nil
}

// RoundToCents rounds d to two fraction digits, ties going up.
func RoundToCents(d decimal.Decimal) decimal.Decimal {
	return d.Shift(MoneyScale).Add(half).Floor().Shift(-MoneyScale)
}

// Decimal returns the amount as a decimal.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float for arithmetic that does not need cent precision.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// Cents returns the amount as an integer number of cents.
func (m Money) Cents() int64 {
	return m.amount.Shift(MoneyScale).IntPart()
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Equal compares two amounts by value.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// String formats the amount with two fraction digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

// MarshalJSON encodes the amount as a JSON number with two fraction digits.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	parsed, err := ParseMoney(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

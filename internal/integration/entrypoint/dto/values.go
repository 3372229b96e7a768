package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// maxIntDigits bounds the digits and fraction digits of whole-number fields.
const maxIntDigits = 9

// Numeric is a request number sent either as a JSON number or as a numeric
// string. The original text is kept so no precision is lost before rounding.
type Numeric string

// UnmarshalJSON accepts 12.5, "12.5" and "1e3".
func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeric(strings.TrimSpace(s))
		return nil
	}
	*n = Numeric(data)
	return nil
}

// Money parses the number as an amount rounded to cents.
func (n Numeric) Money() (valueobject.Money, error) {
	return valueobject.ParseMoney(string(n))
}

// MoneyOr parses the number, returning fallback when it was not sent.
func (n Numeric) MoneyOr(fallback valueobject.Money) (valueobject.Money, error) {
	if n == "" {
		return fallback, nil
	}
	return n.Money()
}

// Float parses the number as a finite float.
func (n Numeric) Float() (float64, error) {
	if _, err := decimal.NewFromString(string(n)); err != nil {
		return 0, fmt.Errorf("%w: %q is not a finite number", domainerror.ErrInvalidArgument, string(n))
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q is out of range", domainerror.ErrInvalidArgument, string(n))
	}
	return f, nil
}

// Int parses the number as a whole number.
func (n Numeric) Int() (int, error) {
	d, err := decimal.NewFromString(string(n))
	if err != nil || d.Exponent() < -maxIntDigits || int64(d.NumDigits())+int64(d.Exponent()) > maxIntDigits {
		return 0, fmt.Errorf("%w: %q is not a whole number", domainerror.ErrInvalidArgument, string(n))
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("%w: %q is not a whole number", domainerror.ErrInvalidArgument, string(n))
	}
	return int(d.IntPart()), nil
}

// BoolLike is a request flag sent as a JSON boolean, a number or a string
// such as "true", "1" or "yes".
type BoolLike bool

// UnmarshalJSON accepts the usual spellings of a boolean.
func (b *BoolLike) UnmarshalJSON(data []byte) error {
	raw := strings.ToLower(strings.Trim(strings.TrimSpace(string(data)), `"`))
	switch raw {
	case "true", "1", "yes", "y", "on":
		*b = true
	case "false", "0", "no", "n", "off", "", "null":
		*b = false
	default:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			*b = f != 0
			return nil
		}
		return fmt.Errorf("%w: %s is not a boolean", domainerror.ErrInvalidArgument, string(data))
	}
	return nil
}

// ParseDate parses an ISO-8601 date sent by a client.
func ParseDate(s string) (time.Time, error) {
	return entity.ParseDate(s)
}

// ParseOptionalDate parses s when it is not empty.
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := entity.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate formats a calendar date for responses.
func FormatDate(t time.Time) string {
	return t.UTC().Format(entity.DateLayout)
}

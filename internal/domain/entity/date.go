package entity

import (
	"fmt"
	"strings"
	"time"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// CalendarDate truncates t to midnight UTC of its own calendar day.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO-8601 date ("2024-03-15") or timestamp
// ("2024-03-15T10:00:00Z") into a calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return CalendarDate(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return CalendarDate(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q is not an ISO-8601 date", domainerror.ErrInvalidArgument, s)
}

// Package valuation projects the growth of a fixed-income position: an initial
// contribution compounding at a periodic rate plus an optional equal
// contribution at the end of every period.
//
// All functions are pure. Results are not rounded to cents so that chained
// projections keep full precision; callers round for display.
package valuation

import (
	"fmt"
	"math"
	"time"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// Params are the inputs of a projection.
type Params struct {
	// Entrance is the principal contributed at the origin date.
	Entrance float64
	// Rate is the periodic (monthly) growth rate as a fraction, e.g. 0.01 for 1%.
	Rate float64
	// Addition is the amount contributed every period. Zero means none.
	Addition float64
}

// Point is one entry of a projection series.
type Point struct {
	Month int     `json:"month"`
	Value float64 `json:"value"`
}

// ValidateRate rejects rates for which the growth formula is undefined.
func ValidateRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: rate must be a finite number", domainerror.ErrInvalidRate)
	}
	if rate == -1 {
		return fmt.Errorf("%w: rate of -1 zeroes the growth factor", domainerror.ErrInvalidRate)
	}
	return nil
}

// Gain returns the value of the position after n periods. n may be negative,
// in which case the growth runs backwards (discounting).
//
//	futureInitial   = E * (1+r)^n
//	futureRecurring = A * ((1+r)^n - 1) / r    (A * n when r == 0)
func Gain(p Params, n int) (float64, error) {
	if err := ValidateRate(p.Rate); err != nil {
		return 0, err
	}

	futureInitial := p.Entrance * math.Pow(1+p.Rate, float64(n))

	futureRecurring := 0.0
	if p.Addition > 0 {
		futureRecurring = p.Addition * annuityFactor(p.Rate, n)
	}

	return futureInitial + futureRecurring, nil
}

// annuityFactor returns ((1+r)^n - 1) / r, with its limit n at r == 0.
// For r > -1 the numerator is computed with Expm1/Log1p so small rates keep precision.
func annuityFactor(rate float64, n int) float64 {
	if rate == 0 {
		return float64(n)
	}
	if rate > -1 {
		return math.Expm1(float64(n)*math.Log1p(rate)) / rate
	}
	return (math.Pow(1+rate, float64(n)) - 1) / rate
}

// Projection returns the values for every month between 0 and months inclusive.
// A negative months walks backwards from 0.
func Projection(p Params, months int) ([]Point, error) {
	if err := ValidateRate(p.Rate); err != nil {
		return nil, err
	}

	step := 1
	if months < 0 {
		step = -1
	}

	points := make([]Point, 0, abs(months)+1)
	for n := 0; ; n += step {
		value, err := Gain(p, n)
		if err != nil {
			return nil, err
		}
		points = append(points, Point{Month: n, Value: value})
		if n == months {
			break
		}
	}
	return points, nil
}

// MonthsElapsed returns the signed number of whole calendar months between
// origin and query. Only the calendar dates are compared; time of day is ignored.
// A trailing partial month is not counted, except that reaching the last day of
// a shorter month completes it (Jan 31 -> Feb 28 is one month).
func MonthsElapsed(origin, query time.Time) int {
	from, to := calendarDay(origin), calendarDay(query)

	sign := 1
	if to.Before(from) {
		sign = -1
		from, to = to, from
	}

	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if months > 0 && to.Day() < from.Day() && !isLastDayOfMonth(to) {
		months--
	}

	return sign * months
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

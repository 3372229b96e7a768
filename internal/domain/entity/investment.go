package entity

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valuation"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// Investment is a fixed-income position: a transaction of an INVESTMENT
// category plus the parameters of its compounding schedule.
type Investment struct {
	Transaction
	Rate           float64 // periodic (monthly) rate as a fraction
	Entrance       valueobject.Money
	RecurrenceAdd  valueobject.Money
	MonthsDuration int // planned horizon, informational
}

// InvestmentTerms groups the growth parameters of an investment.
type InvestmentTerms struct {
	Rate           float64
	Entrance       valueobject.Money
	RecurrenceAdd  valueobject.Money
	MonthsDuration int
}

// CategoryLookup returns the category of userID with the given label and type,
// creating it when the user has none.
type CategoryLookup func(userID uuid.UUID, label string, categoryType CategoryType) (*TransactionCategory, error)

// NewInvestment creates a new, not yet persisted investment. The category must
// be of type INVESTMENT.
func NewInvestment(
	description string,
	category *TransactionCategory,
	value valueobject.Money,
	date time.Time,
	recurrence bool,
	userID uuid.UUID,
	terms InvestmentTerms,
) (*Investment, error) {
	if err := checkInvestmentCategory(category); err != nil {
		return nil, err
	}

	t, err := NewTransaction(description, category, value, date, recurrence, userID)
	if err != nil {
		return nil, err
	}

	inv := &Investment{Transaction: *t}
	if err := inv.SetRate(terms.Rate); err != nil {
		return nil, err
	}
	if err := inv.SetEntrance(terms.Entrance); err != nil {
		return nil, err
	}
	if err := inv.SetRecurrenceAdd(terms.RecurrenceAdd); err != nil {
		return nil, err
	}
	if err := inv.SetMonthsDuration(terms.MonthsDuration); err != nil {
		return nil, err
	}
	return inv, nil
}

// NewInvestmentWithLookup resolves the user's investment category through
// lookup and then creates the investment in it.
func NewInvestmentWithLookup(
	lookup CategoryLookup,
	description string,
	value valueobject.Money,
	date time.Time,
	recurrence bool,
	userID uuid.UUID,
	terms InvestmentTerms,
) (*Investment, error) {
	category, err := lookup(userID, InvestmentCategoryLabel, CategoryTypeInvestment)
	if err != nil {
		return nil, err
	}
	return NewInvestment(description, category, value, date, recurrence, userID, terms)
}

// SetCategory moves the investment to another INVESTMENT category of the same owner.
func (inv *Investment) SetCategory(category *TransactionCategory) error {
	if err := checkInvestmentCategory(category); err != nil {
		return err
	}
	return inv.Transaction.SetCategory(category)
}

// SetRate replaces the periodic rate. The rate must be finite and above -1.
func (inv *Investment) SetRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= -1 {
		return domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidRate,
			fmt.Sprintf("rate must be a finite number greater than -1, got %v", rate),
			domainerror.ErrInvalidRate,
		)
	}
	inv.Rate = rate
	inv.touch()
	return nil
}

// SetEntrance replaces the initial principal.
func (inv *Investment) SetEntrance(entrance valueobject.Money) error {
	if entrance.IsNegative() {
		return domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidEntrance,
			"entrance must not be negative",
			domainerror.ErrInvalidArgument,
		)
	}
	inv.Entrance = entrance
	inv.touch()
	return nil
}

// SetRecurrenceAdd replaces the periodic contribution.
func (inv *Investment) SetRecurrenceAdd(add valueobject.Money) error {
	if add.IsNegative() {
		return domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidRecurrenceAdd,
			"recurrenceAdd must not be negative",
			domainerror.ErrInvalidArgument,
		)
	}
	inv.RecurrenceAdd = add
	inv.touch()
	return nil
}

// SetMonthsDuration replaces the planned horizon.
func (inv *Investment) SetMonthsDuration(months int) error {
	if months < 0 {
		return domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidMonthsDuration,
			"monthsDuration must not be negative",
			domainerror.ErrInvalidArgument,
		)
	}
	inv.MonthsDuration = months
	inv.touch()
	return nil
}

// Validate re-checks every invariant of the investment.
func (inv *Investment) Validate() error {
	if err := checkInvestmentCategory(inv.Category); err != nil {
		return err
	}
	if err := inv.Transaction.Validate(); err != nil {
		return err
	}
	if math.IsNaN(inv.Rate) || math.IsInf(inv.Rate, 0) || inv.Rate <= -1 {
		return domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidRate,
			"rate must be a finite number greater than -1",
			domainerror.ErrInvalidRate,
		)
	}
	if inv.Entrance.IsNegative() || inv.RecurrenceAdd.IsNegative() || inv.MonthsDuration < 0 {
		return domainerror.NewInvestmentError(
			domainerror.ErrCodeMissingInvestmentFields,
			"entrance, recurrenceAdd and monthsDuration must not be negative",
			domainerror.ErrInvalidArgument,
		)
	}
	return nil
}

// PeriodicAddition is the amount contributed every period: RecurrenceAdd when
// the investment is recurring, zero otherwise.
func (inv *Investment) PeriodicAddition() valueobject.Money {
	if !inv.Recurrence {
		return valueobject.ZeroMoney()
	}
	return inv.RecurrenceAdd
}

// ValuationParams returns the inputs of the valuation engine.
func (inv *Investment) ValuationParams() valuation.Params {
	return valuation.Params{
		Entrance: inv.Entrance.Float64(),
		Rate:     inv.Rate,
		Addition: inv.PeriodicAddition().Float64(),
	}
}

// Gain returns the value of the position n months after its date.
func (inv *Investment) Gain(n int) (float64, error) {
	return valuation.Gain(inv.ValuationParams(), n)
}

// MonthsUntil returns the whole months between the investment date and date.
func (inv *Investment) MonthsUntil(date time.Time) int {
	return valuation.MonthsElapsed(inv.Date, date)
}

// CalculateOnMonth returns the value of the position on date.
func (inv *Investment) CalculateOnMonth(date time.Time) (float64, error) {
	return inv.Gain(inv.MonthsUntil(date))
}

// CalculateUntilNowGain returns the value of the position today.
func (inv *Investment) CalculateUntilNowGain() (float64, error) {
	return inv.CalculateOnMonth(time.Now())
}

// GainAtHorizon returns the value of the position at the end of MonthsDuration.
func (inv *Investment) GainAtHorizon() (float64, error) {
	return inv.Gain(inv.MonthsDuration)
}

// Projection returns the month-by-month values from the investment date up to months.
func (inv *Investment) Projection(months int) ([]valuation.Point, error) {
	return valuation.Projection(inv.ValuationParams(), months)
}

func checkInvestmentCategory(category *TransactionCategory) error {
	if category != nil && category.Type != CategoryTypeInvestment {
		return domainerror.NewInvestmentError(
			domainerror.ErrCodeInvestmentCategoryType,
			fmt.Sprintf("investment category must be of type INVESTMENT, got %s", category.Type),
			domainerror.ErrCategoryTypeMismatch,
		)
	}
	return nil
}

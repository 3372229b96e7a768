package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/application/usecase/dashboard"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
	"github.com/finance-tracker/ledger/internal/integration/persistence/persistencetest"
)

func date(month time.Month, day int) time.Time {
	return time.Date(2024, month, day, 0, 0, 0, 0, time.UTC)
}

// seed stores a small ledger:
//
//	Jan: salary 3000 (recurring), rent 1200 (recurring), food 200.50
//	Mar: salary 3000 (recurring), food 99.50, investment 500
func seed(t *testing.T) (dashboard.DashboardRepository, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	db := persistencetest.NewDB(t)
	categories := persistence.NewCategoryRepository(db)
	transactions := persistence.NewTransactionRepository(db)
	investments := persistence.NewInvestmentRepository(db)
	userID := uuid.New()

	newCategory := func(label string, categoryType entity.CategoryType) *entity.TransactionCategory {
		c, err := entity.NewTransactionCategory(label, categoryType, userID)
		require.NoError(t, err)
		require.NoError(t, categories.Create(ctx, c))
		return c
	}
	salary := newCategory("Salary", entity.CategoryTypeGain)
	rent := newCategory("Rent", entity.CategoryTypeCost)
	food := newCategory("Food", entity.CategoryTypeCost)
	invest := newCategory("Investment", entity.CategoryTypeInvestment)

	add := func(description string, c *entity.TransactionCategory, cents int64, d time.Time, recurrence bool) {
		txn, err := entity.NewTransaction(description, c, centsOf(cents), d, recurrence, userID)
		require.NoError(t, err)
		require.NoError(t, transactions.Create(ctx, txn))
	}
	add("Paycheck", salary, 300000, date(time.January, 5), true)
	add("", rent, 120000, date(time.January, 10), true)
	add("market", food, 20050, date(time.January, 20), false)
	add("paycheck", salary, 300000, date(time.March, 5), true)
	add("bakery", food, 9950, date(time.March, 7), false)

	inv, err := entity.NewInvestment("CDB", invest, centsOf(50000), date(time.March, 15), false, userID,
		entity.InvestmentTerms{Rate: 0.01, Entrance: centsOf(50000)})
	require.NoError(t, err)
	require.NoError(t, investments.Create(ctx, inv))

	return persistence.NewDashboardRepository(db), userID
}

func TestGetDataRange(t *testing.T) {
	repo, userID := seed(t)

	out, err := dashboard.NewGetDataRangeUseCase(repo).Execute(context.Background(), dashboard.GetDataRangeInput{UserID: userID})
	require.NoError(t, err)
	assert.True(t, out.HasData)
	assert.Equal(t, 6, out.TotalEntries)
	assert.True(t, out.OldestDate.Equal(date(time.January, 5)))
	assert.True(t, out.NewestDate.Equal(date(time.March, 15)))

	empty, err := dashboard.NewGetDataRangeUseCase(repo).Execute(context.Background(), dashboard.GetDataRangeInput{UserID: uuid.New()})
	require.NoError(t, err)
	assert.False(t, empty.HasData)
}

func TestGetCategoryBreakdown(t *testing.T) {
	repo, userID := seed(t)
	uc := dashboard.NewGetCategoryBreakdownUseCase(repo)

	out, err := uc.Execute(context.Background(), dashboard.GetCategoryBreakdownInput{UserID: userID})
	require.NoError(t, err)

	require.Len(t, out.Categories, 4)
	assert.Equal(t, "rent", out.Categories[0].Label)
	assert.Equal(t, "1200", out.Categories[0].Total.String())
	assert.Equal(t, "food", out.Categories[1].Label)
	assert.Equal(t, "300", out.Categories[1].Total.String())
	assert.Equal(t, 2, out.Categories[1].Count)
	assert.Equal(t, 20.0, out.Categories[1].Percentage)
	assert.Equal(t, entity.CategoryTypeGain, out.Categories[2].Type)
	assert.Equal(t, entity.CategoryTypeInvestment, out.Categories[3].Type)

	assert.Equal(t, "1500", out.Totals.Cost.String())
	assert.Equal(t, "6000", out.Totals.Gain.String())
	assert.Equal(t, "500", out.Totals.Investment.String())
	assert.Equal(t, "4500", out.Totals.Net().String())

	start, end := date(time.March, 1), date(time.March, 31)
	march, err := uc.Execute(context.Background(), dashboard.GetCategoryBreakdownInput{
		UserID: userID,
		Period: dashboard.Period{StartDate: &start, EndDate: &end},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, march.Totals.Count)

	_, err = uc.Execute(context.Background(), dashboard.GetCategoryBreakdownInput{
		UserID: userID,
		Period: dashboard.Period{StartDate: &end, EndDate: &start},
	})
	assert.True(t, errors.Is(err, domainerror.ErrInvalidArgument))
}

func TestGetMonthlyTotals(t *testing.T) {
	repo, userID := seed(t)

	out, err := dashboard.NewGetMonthlyTotalsUseCase(repo).Execute(context.Background(), dashboard.GetMonthlyTotalsInput{UserID: userID})
	require.NoError(t, err)

	require.Len(t, out.Months, 3)
	assert.True(t, out.Months[0].Month.Equal(date(time.January, 1)))
	assert.Equal(t, "1400.5", out.Months[0].Cost.String())
	assert.Equal(t, "1599.5", out.Months[0].Net().String())

	assert.True(t, out.Months[1].Month.Equal(date(time.February, 1)))
	assert.Equal(t, 0, out.Months[1].Count)

	assert.Equal(t, "500", out.Months[2].Investment.String())
	assert.Equal(t, "2900.5", out.Months[2].Net().String())

	none, err := dashboard.NewGetMonthlyTotalsUseCase(repo).Execute(context.Background(), dashboard.GetMonthlyTotalsInput{UserID: uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, none.Months)
}

func TestGetRecurrenceBreakdown(t *testing.T) {
	repo, userID := seed(t)

	out, err := dashboard.NewGetRecurrenceBreakdownUseCase(repo).Execute(context.Background(), dashboard.GetRecurrenceBreakdownInput{UserID: userID})
	require.NoError(t, err)

	assert.Equal(t, "6000", out.Recurring.Gain.String())
	assert.Equal(t, "1200", out.Recurring.Cost.String())
	assert.Equal(t, "300", out.OneOff.Cost.String())
	assert.Equal(t, "500", out.OneOff.Investment.String())

	require.Len(t, out.Items, 2)
	assert.Equal(t, "Paycheck", out.Items[0].Description)
	assert.Equal(t, 2, out.Items[0].Count)
	assert.Equal(t, "rent", out.Items[1].Description)
}

func centsOf(cents int64) valueobject.Money {
	return valueobject.NewMoney(decimal.New(cents, -2))
}

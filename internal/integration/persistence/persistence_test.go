package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
	"github.com/finance-tracker/ledger/internal/integration/persistence/persistencetest"
)

func newTestDB(t *testing.T) *gorm.DB {
	return persistencetest.NewDB(t)
}

func createCategory(t *testing.T, repo adapter.CategoryRepository, userID uuid.UUID, label string, categoryType entity.CategoryType) *entity.TransactionCategory {
	t.Helper()
	c, err := entity.NewTransactionCategory(label, categoryType, userID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func money(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.ParseMoney(s)
	require.NoError(t, err)
	return m
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(newTestDB(t))
	userID := uuid.New()

	food := createCategory(t, repo, userID, "  Food ", entity.CategoryTypeCost)
	require.NotEqual(t, uuid.Nil, food.ID)

	t.Run("find by key ignores case and spaces", func(t *testing.T) {
		found, err := repo.FindByKey(ctx, entity.NewCategoryKey(userID, "FOOD", entity.CategoryTypeCost))
		require.NoError(t, err)
		assert.Equal(t, food.ID, found.ID)
		assert.Equal(t, "food", found.Label)
	})

	t.Run("unique index rejects the same key", func(t *testing.T) {
		dup, err := entity.NewTransactionCategory("food", entity.CategoryTypeCost, userID)
		require.NoError(t, err)
		err = repo.Create(ctx, dup)
		assert.ErrorIs(t, err, domainerror.ErrCategoryLabelExists)
	})

	t.Run("list filters by type", func(t *testing.T) {
		createCategory(t, repo, userID, "Salary", entity.CategoryTypeGain)
		createCategory(t, repo, uuid.New(), "Salary", entity.CategoryTypeGain)

		all, err := repo.FindByUser(ctx, userID, nil)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		gain := entity.CategoryTypeGain
		gains, err := repo.FindByUser(ctx, userID, &gain)
		require.NoError(t, err)
		require.Len(t, gains, 1)
		assert.Equal(t, "salary", gains[0].Label)
	})

	t.Run("update and delete", func(t *testing.T) {
		c := createCategory(t, repo, userID, "Travel", entity.CategoryTypeCost)
		require.NoError(t, c.Rename("Trips"))
		require.NoError(t, repo.Update(ctx, c))

		found, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "trips", found.Label)

		require.NoError(t, repo.Delete(ctx, c.ID))
		_, err = repo.FindByID(ctx, c.ID)
		assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, c.ID), domainerror.ErrCategoryNotFound)
	})
}

func TestTransactionRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	categories := NewCategoryRepository(db)
	repo := NewTransactionRepository(db)
	userID := uuid.New()
	food := createCategory(t, categories, userID, "Food", entity.CategoryTypeCost)

	txn, err := entity.NewTransaction("market", food, money(t, "19.995"), day(2024, 3, 15), false, userID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, txn))
	require.NotEqual(t, uuid.Nil, txn.ID)

	t.Run("find by id loads the category", func(t *testing.T) {
		found, err := repo.FindByID(ctx, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, "20.00", found.Value.String())
		assert.True(t, found.Date.Equal(day(2024, 3, 15)))
		require.NotNil(t, found.Category)
		assert.Equal(t, entity.CategoryTypeCost, found.Category.Type)
	})

	t.Run("occurrences match the tuple", func(t *testing.T) {
		occurrences, err := repo.FindOccurrences(ctx, txn.OccurrenceKey())
		require.NoError(t, err)
		require.Len(t, occurrences, 1)
		assert.Equal(t, txn.ID, occurrences[0].ID)

		other := txn.OccurrenceKey()
		other.Value = money(t, "20.01")
		occurrences, err = repo.FindOccurrences(ctx, other)
		require.NoError(t, err)
		assert.Empty(t, occurrences)
	})

	t.Run("unique index rejects a duplicate", func(t *testing.T) {
		dup, err := entity.NewTransaction("again", food, money(t, "20"), day(2024, 3, 15), false, userID)
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), domainerror.ErrDuplicateTransaction)
	})

	t.Run("invalid entities are not written", func(t *testing.T) {
		bad, err := entity.NewTransaction("bad", food, money(t, "7"), day(2024, 3, 20), false, userID)
		require.NoError(t, err)
		bad.Value = money(t, "0")
		assert.ErrorIs(t, repo.Create(ctx, bad), domainerror.ErrInvalidArgument)

		bad.Value = money(t, "7")
		bad.UserID = uuid.New()
		assert.ErrorIs(t, repo.Update(ctx, bad), domainerror.ErrOwnerMismatch)

		list, err := repo.FindByUser(ctx, userID, entity.TransactionFilter{})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("list applies the date range", func(t *testing.T) {
		later, err := entity.NewTransaction("", food, money(t, "5"), day(2024, 4, 2), true, userID)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, later))

		begin, until := day(2024, 4, 1), day(2024, 4, 30)
		list, err := repo.FindByUser(ctx, userID, entity.TransactionFilter{Begin: &begin, Until: &until})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, later.ID, list[0].ID)

		recurring := true
		list, err = repo.FindByUser(ctx, userID, entity.TransactionFilter{Recurrence: &recurring})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("update and references", func(t *testing.T) {
		require.NoError(t, txn.SetDescription("groceries"))
		require.NoError(t, repo.Update(ctx, txn))

		found, err := repo.FindByID(ctx, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, "groceries", found.Description)

		transactions, investments, err := categories.CountReferences(ctx, food.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), transactions)
		assert.Zero(t, investments)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, txn.ID))
		assert.ErrorIs(t, repo.Delete(ctx, txn.ID), domainerror.ErrTransactionNotFound)
		_, err := repo.FindByID(ctx, txn.ID)
		assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
	})
}

func TestInvestmentRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	categories := NewCategoryRepository(db)
	repo := NewInvestmentRepository(db)
	userID := uuid.New()
	category := createCategory(t, categories, userID, entity.InvestmentCategoryLabel, entity.CategoryTypeInvestment)

	inv, err := entity.NewInvestment("CDB", category, money(t, "1000"), day(2024, 1, 10), true, userID, entity.InvestmentTerms{
		Rate:           0.0085,
		Entrance:       money(t, "1000"),
		RecurrenceAdd:  money(t, "150.555"),
		MonthsDuration: 24,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, inv))

	found, err := repo.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0085, found.Rate)
	assert.Equal(t, "1000.00", found.Entrance.String())
	assert.Equal(t, "150.56", found.RecurrenceAdd.String())
	assert.Equal(t, 24, found.MonthsDuration)
	assert.True(t, found.Recurrence)
	require.NotNil(t, found.Category)
	assert.Equal(t, entity.CategoryTypeInvestment, found.Category.Type)

	require.NoError(t, found.SetRate(0.01))
	require.NoError(t, repo.Update(ctx, found))
	updated, err := repo.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.01, updated.Rate)

	list, err := repo.FindByUser(ctx, userID, entity.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, investments, err := categories.CountReferences(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), investments)

	require.NoError(t, repo.Delete(ctx, inv.ID))
	_, err = repo.FindByID(ctx, inv.ID)
	assert.True(t, errors.Is(err, domainerror.ErrInvestmentNotFound))
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	categories := NewCategoryRepository(db)
	tokens := NewTokenRepository(db)

	user := entity.NewUser("Ana@Example.com ", "Ana", "hash")
	require.NoError(t, users.Create(ctx, user))

	found, err := users.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	err = users.Create(ctx, entity.NewUser("ana@example.com", "Other", "hash"))
	assert.ErrorIs(t, err, domainerror.ErrEmailAlreadyExists)

	createCategory(t, categories, user.ID, "Food", entity.CategoryTypeCost)
	require.NoError(t, tokens.SaveRefreshToken(ctx, "refresh-token", user.ID, time.Now().Add(time.Hour)))

	valid, err := tokens.IsRefreshTokenValid(ctx, "refresh-token")
	require.NoError(t, err)
	assert.True(t, valid)

	require.NoError(t, users.Delete(ctx, user.ID))

	_, err = users.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
	left, err := categories.FindByUser(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, left)
	valid, err = tokens.IsRefreshTokenValid(ctx, "refresh-token")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestTokenRepositoryInvalidation(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokenRepository(newTestDB(t))
	userID := uuid.New()

	require.NoError(t, tokens.SaveRefreshToken(ctx, "a", userID, time.Now().Add(time.Hour)))
	require.NoError(t, tokens.SaveRefreshToken(ctx, "b", userID, time.Now().Add(time.Hour)))
	require.NoError(t, tokens.SaveRefreshToken(ctx, "expired", userID, time.Now().Add(-time.Minute)))

	require.NoError(t, tokens.InvalidateRefreshToken(ctx, "a"))

	for token, want := range map[string]bool{"a": false, "b": true, "expired": false, "unknown": false} {
		got, err := tokens.IsRefreshTokenValid(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, want, got, token)
	}

	require.NoError(t, tokens.InvalidateAllUserRefreshTokens(ctx, userID))
	got, err := tokens.IsRefreshTokenValid(ctx, "b")
	require.NoError(t, err)
	assert.False(t, got)
}

package investment

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/adapter/adaptertest"
	"github.com/finance-tracker/ledger/internal/application/usecase/category"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
	"github.com/finance-tracker/ledger/internal/integration/persistence/persistencetest"
)

type fixture struct {
	categories  adapter.CategoryRepository
	investments adapter.InvestmentRepository
	resolver    *category.FindOrCreateCategoryUseCase
	publisher   *adaptertest.RecordingPublisher
	cache       *adaptertest.MemoryValuationCache
	userID      uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := persistencetest.NewDB(t)
	f := &fixture{
		categories:  persistence.NewCategoryRepository(db),
		investments: persistence.NewInvestmentRepository(db),
		publisher:   &adaptertest.RecordingPublisher{},
		cache:       adaptertest.NewMemoryValuationCache(),
		userID:      uuid.New(),
	}
	f.resolver = category.NewFindOrCreateCategoryUseCase(f.categories, f.publisher)
	return f
}

func money(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.ParseMoney(s)
	require.NoError(t, err)
	return m
}

var origin = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func (f *fixture) input(t *testing.T) CreateInvestmentInput {
	return CreateInvestmentInput{
		UserID:         f.userID,
		Description:    "CDB",
		Value:          money(t, "1000"),
		Date:           origin,
		Rate:           0.01,
		Entrance:       money(t, "1000"),
		RecurrenceAdd:  money(t, "0"),
		MonthsDuration: 12,
	}
}

func (f *fixture) create(t *testing.T, input CreateInvestmentInput) *entity.Investment {
	t.Helper()
	out, err := NewCreateInvestmentUseCase(f.investments, f.resolver, f.publisher).Execute(context.Background(), input)
	require.NoError(t, err)
	return out.Investment
}

func TestCreateInvestment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the investment category on first use", func(t *testing.T) {
		f := newFixture(t)
		first := f.create(t, f.input(t))

		require.NotNil(t, first.Category)
		assert.Equal(t, entity.CategoryTypeInvestment, first.Category.Type)
		assert.Equal(t, "investment", first.Category.Label)

		second := f.input(t)
		second.Date = origin.AddDate(0, 1, 0)
		inv := f.create(t, second)
		assert.Equal(t, first.CategoryID, inv.CategoryID)

		investmentType := entity.CategoryTypeInvestment
		categories, err := f.categories.FindByUser(ctx, f.userID, &investmentType)
		require.NoError(t, err)
		assert.Len(t, categories, 1)

		events := f.publisher.Events()
		require.Len(t, events, 3)
		assert.Equal(t, adapter.EntityCategory, events[0].EntityType)
		assert.Equal(t, adapter.EntityInvestment, events[1].EntityType)
	})

	t.Run("duplicate", func(t *testing.T) {
		f := newFixture(t)
		f.create(t, f.input(t))
		_, err := NewCreateInvestmentUseCase(f.investments, f.resolver, f.publisher).Execute(ctx, f.input(t))
		assert.True(t, errors.Is(err, domainerror.ErrDuplicateTransaction))
	})

	t.Run("invalid terms", func(t *testing.T) {
		f := newFixture(t)
		tests := []struct {
			name   string
			modify func(*CreateInvestmentInput)
			want   error
		}{
			{name: "rate -1", modify: func(in *CreateInvestmentInput) { in.Rate = -1 }, want: domainerror.ErrInvalidRate},
			{name: "rate NaN", modify: func(in *CreateInvestmentInput) { in.Rate = math.NaN() }, want: domainerror.ErrInvalidRate},
			{name: "negative entrance", modify: func(in *CreateInvestmentInput) { in.Entrance = money(t, "-1") }, want: domainerror.ErrInvalidArgument},
			{name: "negative months", modify: func(in *CreateInvestmentInput) { in.MonthsDuration = -1 }, want: domainerror.ErrInvalidArgument},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				input := f.input(t)
				tt.modify(&input)
				_, err := NewCreateInvestmentUseCase(f.investments, f.resolver, f.publisher).Execute(ctx, input)
				assert.True(t, errors.Is(err, tt.want), "got %v", err)
			})
		}
	})
}

func TestGetListAndDeleteInvestment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	inv := f.create(t, f.input(t))

	got, err := NewGetInvestmentUseCase(f.investments).Execute(ctx, GetInvestmentInput{InvestmentID: inv.ID, UserID: f.userID})
	require.NoError(t, err)
	assert.Equal(t, 0.01, got.Investment.Rate)
	assert.Equal(t, "1000.00", got.Investment.Entrance.String())

	_, err = NewGetInvestmentUseCase(f.investments).Execute(ctx, GetInvestmentInput{InvestmentID: inv.ID, UserID: uuid.New()})
	assert.True(t, errors.Is(err, domainerror.ErrNotAuthorizedToModifyInvestment))

	list, err := NewListInvestmentsUseCase(f.investments).Execute(ctx, ListInvestmentsInput{UserID: f.userID})
	require.NoError(t, err)
	assert.Len(t, list.Investments, 1)

	_, err = NewGetValuationUseCase(f.investments, f.cache, nil).Execute(ctx, ValuationInput{InvestmentID: inv.ID, UserID: f.userID, Mode: ValuationAtHorizon})
	require.NoError(t, err)
	require.Equal(t, 1, f.cache.Len())

	out, err := NewDeleteInvestmentUseCase(f.investments, f.cache, f.publisher).Execute(ctx, DeleteInvestmentInput{InvestmentID: inv.ID, UserID: f.userID})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 0, f.cache.Len())
	assert.Equal(t, adapter.EventDeleted, f.publisher.Last().Event)

	_, err = NewGetInvestmentUseCase(f.investments).Execute(ctx, GetInvestmentInput{InvestmentID: inv.ID, UserID: f.userID})
	assert.True(t, errors.Is(err, domainerror.ErrInvestmentNotFound))
}

func TestUpdateInvestment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	inv := f.create(t, f.input(t))
	uc := NewUpdateInvestmentUseCase(f.investments, f.cache, f.publisher)

	rate := 0.02
	out, err := uc.Execute(ctx, UpdateInvestmentInput{InvestmentID: inv.ID, UserID: f.userID, Rate: &rate})
	require.NoError(t, err)
	assert.Equal(t, 0.02, out.Investment.Rate)

	add := money(t, "100.005")
	recurrence := true
	out, err = uc.Execute(ctx, UpdateInvestmentInput{InvestmentID: inv.ID, UserID: f.userID, RecurrenceAdd: &add, Recurrence: &recurrence})
	require.NoError(t, err)
	assert.Equal(t, "100.01", out.Investment.RecurrenceAdd.String())
	assert.Equal(t, "100.01", out.Investment.PeriodicAddition().String())

	months := 24
	_, err = uc.Execute(ctx, UpdateInvestmentInput{InvestmentID: inv.ID, UserID: f.userID, MonthsDuration: &months})
	require.NoError(t, err)

	stored, err := f.investments.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.02, stored.Rate)
	assert.Equal(t, 24, stored.MonthsDuration)
	assert.True(t, stored.Recurrence)

	badRate := -1.0
	_, err = uc.Execute(ctx, UpdateInvestmentInput{InvestmentID: inv.ID, UserID: f.userID, Rate: &badRate})
	assert.True(t, errors.Is(err, domainerror.ErrInvalidRate))

	_, err = uc.Execute(ctx, UpdateInvestmentInput{InvestmentID: inv.ID, UserID: f.userID})
	assert.True(t, errors.Is(err, domainerror.ErrInvalidArgument))
}

func TestGetValuation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	inv := f.create(t, f.input(t))
	clock := adaptertest.FixedClock{At: origin.AddDate(1, 0, 0)}
	uc := NewGetValuationUseCase(f.investments, f.cache, clock)

	t.Run("on the origin date returns the entrance", func(t *testing.T) {
		out, err := uc.Execute(ctx, ValuationInput{InvestmentID: inv.ID, UserID: f.userID, Mode: ValuationOnDate, Date: origin})
		require.NoError(t, err)
		assert.Equal(t, 0, out.Months)
		assert.Equal(t, 1000.0, out.Value)
	})

	t.Run("now uses the clock", func(t *testing.T) {
		out, err := uc.Execute(ctx, ValuationInput{InvestmentID: inv.ID, UserID: f.userID, Mode: ValuationNow})
		require.NoError(t, err)
		assert.Equal(t, 12, out.Months)
		assert.InDelta(t, 1126.825030131970, out.Value, 1e-9)
	})

	t.Run("second query is served from the cache", func(t *testing.T) {
		out, err := uc.Execute(ctx, ValuationInput{InvestmentID: inv.ID, UserID: f.userID, Mode: ValuationAtHorizon})
		require.NoError(t, err)
		assert.True(t, out.Cached)
		assert.InDelta(t, 1126.825030131970, out.Value, 1e-9)
	})

	t.Run("before the origin discounts", func(t *testing.T) {
		out, err := uc.Execute(ctx, ValuationInput{InvestmentID: inv.ID, UserID: f.userID, Mode: ValuationOnDate, Date: origin.AddDate(0, -1, 0)})
		require.NoError(t, err)
		assert.Equal(t, -1, out.Months)
		assert.InDelta(t, 1000/1.01, out.Value, 1e-9)
	})

	t.Run("editing the investment invalidates cached values", func(t *testing.T) {
		rate := 0.0
		_, err := NewUpdateInvestmentUseCase(f.investments, nil, f.publisher).Execute(ctx, UpdateInvestmentInput{InvestmentID: inv.ID, UserID: f.userID, Rate: &rate})
		require.NoError(t, err)

		out, err := uc.Execute(ctx, ValuationInput{InvestmentID: inv.ID, UserID: f.userID, Mode: ValuationAtHorizon})
		require.NoError(t, err)
		assert.False(t, out.Cached)
		assert.Equal(t, 1000.0, out.Value)
	})

	t.Run("cache failures fall back to computing", func(t *testing.T) {
		broken := adaptertest.NewMemoryValuationCache()
		broken.Err = errors.New("redis down")
		out, err := NewGetValuationUseCase(f.investments, broken, clock).Execute(ctx, ValuationInput{InvestmentID: inv.ID, UserID: f.userID, Mode: ValuationNow})
		require.NoError(t, err)
		assert.Equal(t, 1000.0, out.Value)
	})

	t.Run("date mode requires a date", func(t *testing.T) {
		_, err := uc.Execute(ctx, ValuationInput{InvestmentID: inv.ID, UserID: f.userID, Mode: ValuationOnDate})
		assert.True(t, errors.Is(err, domainerror.ErrInvalidArgument))
	})
}

func TestGetProjection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	input := f.input(t)
	input.Rate = 0
	input.Recurrence = true
	input.RecurrenceAdd = money(t, "50")
	input.MonthsDuration = 3
	inv := f.create(t, input)
	uc := NewGetProjectionUseCase(f.investments)

	out, err := uc.Execute(ctx, ProjectionInput{InvestmentID: inv.ID, UserID: f.userID})
	require.NoError(t, err)
	require.Len(t, out.Points, 4)
	assert.Equal(t, 1000.0, out.Points[0].Value)
	assert.Equal(t, 1150.0, out.Points[3].Value)

	months := 1
	out, err = uc.Execute(ctx, ProjectionInput{InvestmentID: inv.ID, UserID: f.userID, Months: &months})
	require.NoError(t, err)
	assert.Len(t, out.Points, 2)

	tooLong := MaxProjectionMonths + 1
	_, err = uc.Execute(ctx, ProjectionInput{InvestmentID: inv.ID, UserID: f.userID, Months: &tooLong})
	assert.True(t, errors.Is(err, domainerror.ErrInvalidArgument))
}

func TestInvalidateValuations(t *testing.T) {
	ctx := context.Background()
	investmentID := uuid.New()
	otherID := uuid.New()

	seed := func(c *adaptertest.MemoryValuationCache) {
		for _, id := range []uuid.UUID{investmentID, otherID} {
			key := adapter.ValuationKey{InvestmentID: id, Version: origin, Month: 3}
			require.NoError(t, c.Set(ctx, key, 1030.30))
		}
	}

	t.Run("investment update evicts only that investment", func(t *testing.T) {
		c := adaptertest.NewMemoryValuationCache()
		seed(c)

		err := NewInvalidateValuationsUseCase(c).Handle(ctx, adapter.LedgerEvent{
			Event:      adapter.EventUpdated,
			EntityType: adapter.EntityInvestment,
			EntityID:   investmentID,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("creations and other entities are ignored", func(t *testing.T) {
		c := adaptertest.NewMemoryValuationCache()
		seed(c)
		uc := NewInvalidateValuationsUseCase(c)

		require.NoError(t, uc.Handle(ctx, adapter.LedgerEvent{
			Event:      adapter.EventCreated,
			EntityType: adapter.EntityInvestment,
			EntityID:   investmentID,
		}))
		require.NoError(t, uc.Handle(ctx, adapter.LedgerEvent{
			Event:      adapter.EventDeleted,
			EntityType: adapter.EntityTransaction,
			EntityID:   investmentID,
		}))
		assert.Equal(t, 2, c.Len())
	})

	t.Run("cache failure is returned for retry", func(t *testing.T) {
		c := adaptertest.NewMemoryValuationCache()
		c.Err = errors.New("redis down")

		err := NewInvalidateValuationsUseCase(c).Handle(ctx, adapter.LedgerEvent{
			Event:      adapter.EventDeleted,
			EntityType: adapter.EntityInvestment,
			EntityID:   investmentID,
		})
		assert.ErrorContains(t, err, "redis down")
	})
}

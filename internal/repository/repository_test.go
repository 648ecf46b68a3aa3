package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rentledger/internal/database/dbtest"
	"rentledger/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

type fixture struct {
	db        *gorm.DB
	user      *domain.User
	assets    *AssetRepository
	locations *LocationRepository
	expenses  *ExpenseRepository
	templates *TemplateRepository
}

func newFixture(t *testing.T) *fixture {
	db := dbtest.Open(t)
	return &fixture{
		db:        db,
		user:      dbtest.SeedUser(t, db, "owner@example.com"),
		assets:    NewAssetRepository(db),
		locations: NewLocationRepository(db),
		expenses:  NewExpenseRepository(db),
		templates: NewTemplateRepository(db),
	}
}

func (f *fixture) asset(t *testing.T, name, price string) *domain.Asset {
	t.Helper()
	a := &domain.Asset{Name: name, Category: "Booth", Status: domain.AssetAvailable, PurchasePrice: d(price),
		PurchaseDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}
	a.Stamp(f.user.ID)
	require.NoError(t, f.assets.Create(context.Background(), a))
	return a
}

func (f *fixture) location(t *testing.T, assetID int64, date time.Time, price string) *domain.Location {
	t.Helper()
	l := &domain.Location{AssetID: assetID, Date: date, Price: d(price), LocationStatus: domain.LocationPlanned}
	l.Stamp(f.user.ID)
	require.NoError(t, f.locations.Create(context.Background(), l))
	return l
}

func (f *fixture) expense(t *testing.T, locationID, templateID *int64, cost string) *domain.Expense {
	t.Helper()
	e := &domain.Expense{Name: "fuel", Cost: d(cost), LocationID: locationID, TemplateID: templateID}
	e.Stamp(f.user.ID)
	require.NoError(t, f.expenses.Create(context.Background(), e))
	return e
}

func TestUserRepository_CreateAndDuplicate(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &domain.User{Email: "  Admin@Example.com ", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, "admin@example.com", u.Email)

	err := repo.Create(ctx, &domain.User{Email: "admin@example.com", PasswordHash: "other"})
	assert.ErrorIs(t, err, ErrDuplicate)

	got, err := repo.GetByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "new-hash"))
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
	assert.ErrorIs(t, repo.UpdatePassword(ctx, 999, "x"), ErrNotFound)
}

func TestUserRepository_ListOrderedByEmail(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for _, email := range []string{"zed@example.com", "amy@example.com", "kim@example.com"} {
		require.NoError(t, repo.Create(ctx, &domain.User{Email: email, PasswordHash: "x"}))
	}
	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "amy@example.com", users[0].Email)
	assert.Equal(t, "zed@example.com", users[2].Email)
}

func TestAssetRepository_DetailAndCascadeDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.asset(t, "Booth A", "1000")
	older := f.location(t, a.ID, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "100")
	newer := f.location(t, a.ID, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "200")
	f.expense(t, &older.ID, nil, "15")
	global := f.expense(t, nil, nil, "50")

	got, err := f.assets.GetWithActivity(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got.Locations, 2)
	assert.Equal(t, newer.ID, got.Locations[0].ID)
	require.Len(t, got.Locations[1].Expenses, 1)
	assert.True(t, got.Locations[1].Expenses[0].Cost.Equal(d("15")))

	require.NoError(t, f.assets.Delete(ctx, a.ID))

	var locCount, expCount int64
	f.db.Model(&domain.Location{}).Count(&locCount)
	f.db.Model(&domain.Expense{}).Count(&expCount)
	assert.Zero(t, locCount)
	assert.Equal(t, int64(1), expCount)

	_, err = f.expenses.GetByID(ctx, global.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, f.assets.Delete(ctx, a.ID), ErrNotFound)
}

func TestAssetRepository_ListNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.asset(t, "First", "10")
	second := f.asset(t, "Second", "20")
	f.location(t, first.ID, time.Now().UTC(), "5")

	assets, err := f.assets.ListWithActivity(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, second.ID, assets[0].ID)
	assert.Len(t, assets[1].Locations, 1)

	n, err := f.assets.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	ok, err := f.assets.Exists(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = f.assets.Exists(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocationRepository_DeleteRemovesExpenses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.asset(t, "Van", "0")
	l := f.location(t, a.ID, time.Now().UTC(), "80")
	f.expense(t, &l.ID, nil, "20")

	require.NoError(t, f.locations.Delete(ctx, l.ID))

	total, err := f.expenses.GlobalTotal(ctx)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	var expCount int64
	f.db.Model(&domain.Expense{}).Count(&expCount)
	assert.Zero(t, expCount)
	assert.ErrorIs(t, f.locations.Delete(ctx, l.ID), ErrNotFound)
}

func TestLocationRepository_ListWithAssetFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.asset(t, "A", "0")
	b := f.asset(t, "B", "0")
	f.location(t, a.ID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "1")
	f.location(t, a.ID, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "2")
	f.location(t, b.ID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "3")

	all, err := f.locations.ListWithAsset(ctx, LocationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].Asset.Name)
	assert.Equal(t, "B", all[1].Asset.Name)

	onlyA, err := f.locations.ListWithAsset(ctx, LocationFilter{AssetID: &a.ID})
	require.NoError(t, err)
	assert.Len(t, onlyA, 2)

	since, err := f.locations.ListWithAsset(ctx, LocationFilter{From: ptr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.Len(t, since, 2)

	other, err := f.locations.ListWithAsset(ctx, LocationFilter{CreatedByID: ptr(int64(999))})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestExpenseRepository_GlobalTotalAndPreloads(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.asset(t, "Booth", "0")
	l := f.location(t, a.ID, time.Now().UTC(), "100")
	f.expense(t, nil, nil, "30")
	f.expense(t, nil, nil, "20")
	direct := f.expense(t, &l.ID, nil, "5")

	total, err := f.expenses.GlobalTotal(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(d("50")), total.String())

	got, err := f.expenses.GetDetail(ctx, direct.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Location)
	require.NotNil(t, got.Location.Asset)
	assert.Equal(t, "Booth", got.Location.Asset.Name)

	list, err := f.expenses.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestTemplateRepository_DeleteDetachesExpenses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tpl := &domain.ExpenseTemplate{Name: "Cleaning", DefaultCost: decimal.NewNullDecimal(d("25"))}
	tpl.Stamp(f.user.ID)
	require.NoError(t, f.templates.Create(ctx, tpl))
	e := f.expense(t, nil, &tpl.ID, "25")

	require.NoError(t, f.templates.Delete(ctx, tpl.ID))

	got, err := f.expenses.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TemplateID)
	assert.ErrorIs(t, f.templates.Delete(ctx, tpl.ID), ErrNotFound)
}

func TestTemplateRepository_ListByName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"Transport", "Cleaning"} {
		tpl := &domain.ExpenseTemplate{Name: name}
		tpl.Stamp(f.user.ID)
		require.NoError(t, f.templates.Create(ctx, tpl))
	}
	list, err := f.templates.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Cleaning", list[0].Name)
	assert.False(t, list[0].DefaultCost.Valid)
}

func TestDashboardRepository_Totals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewDashboardRepository(f.db)

	a := f.asset(t, "Booth", "1000")
	f.asset(t, "Van", "250.50")
	f.location(t, a.ID, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "300")
	f.location(t, a.ID, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), "200")
	f.expense(t, nil, nil, "40")

	filter := DashboardFilter{UserID: f.user.ID}
	revenue, count, err := repo.LocationTotals(ctx, filter)
	require.NoError(t, err)
	assert.True(t, revenue.Equal(d("500")), revenue.String())
	assert.Equal(t, int64(2), count)

	filter.Start = ptr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	revenue, count, err = repo.LocationTotals(ctx, filter)
	require.NoError(t, err)
	assert.True(t, revenue.Equal(d("200")), revenue.String())
	assert.Equal(t, int64(1), count)

	spent, err := repo.ExpenseTotal(ctx, DashboardFilter{UserID: f.user.ID})
	require.NoError(t, err)
	assert.True(t, spent.Equal(d("40")), spent.String())

	spent, err = repo.ExpenseTotal(ctx, DashboardFilter{UserID: f.user.ID, End: ptr(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.True(t, spent.IsZero())

	assets, purchases, err := repo.AssetTotals(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), assets)
	assert.True(t, purchases.Equal(d("1250.5")), purchases.String())

	other, _, err := repo.LocationTotals(ctx, DashboardFilter{UserID: f.user.ID + 100})
	require.NoError(t, err)
	assert.True(t, other.IsZero())
}

func TestMoneyTotalsAreExact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewDashboardRepository(f.db)

	a := f.asset(t, "Booth", "0.1")
	f.asset(t, "Van", "0.2")
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	f.location(t, a.ID, day, "0.1")
	f.location(t, a.ID, day, "0.2")
	f.expense(t, nil, nil, "0.1")
	f.expense(t, nil, nil, "0.2")

	global, err := f.expenses.GlobalTotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.3", global.String())

	revenue, count, err := repo.LocationTotals(ctx, DashboardFilter{UserID: f.user.ID})
	require.NoError(t, err)
	assert.Equal(t, "0.3", revenue.String())
	assert.Equal(t, int64(2), count)

	spent, err := repo.ExpenseTotal(ctx, DashboardFilter{UserID: f.user.ID})
	require.NoError(t, err)
	assert.Equal(t, "0.3", spent.String())

	_, purchases, err := repo.AssetTotals(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.3", purchases.String())
}

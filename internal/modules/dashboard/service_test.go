package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rentledger/internal/database/dbtest"
	"rentledger/internal/domain"
	"rentledger/internal/modules/events"
	"rentledger/internal/pkg/cache"
	"rentledger/internal/pkg/charts"
	"rentledger/internal/repository"
)

type mockDashboardRepo struct {
	mock.Mock
}

func (m *mockDashboardRepo) LocationTotals(ctx context.Context, f repository.DashboardFilter) (decimal.Decimal, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(decimal.Decimal), args.Get(1).(int64), args.Error(2)
}

func (m *mockDashboardRepo) ExpenseTotal(ctx context.Context, f repository.DashboardFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockDashboardRepo) AssetTotals(ctx context.Context, userID int64) (int64, decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Get(1).(decimal.Decimal), args.Error(2)
}

func TestSummary_CombinesAndCaches(t *testing.T) {
	repo := new(mockDashboardRepo)
	summaries := cache.NewTagged[Summary](time.Minute)
	svc := NewService(repo, nil, summaries)

	repo.On("LocationTotals", mock.Anything, mock.Anything).Return(decimal.NewFromInt(300), int64(2), nil).Once()
	repo.On("ExpenseTotal", mock.Anything, mock.Anything).Return(decimal.NewFromInt(70), nil).Once()
	repo.On("AssetTotals", mock.Anything, int64(7)).Return(int64(1), decimal.NewFromInt(1000), nil).Once()

	got, err := svc.Summary(context.Background(), 7, nil, nil)
	require.NoError(t, err)
	assert.True(t, got.Revenue.Equal(decimal.NewFromInt(300)))
	assert.True(t, got.Expenses.Equal(decimal.NewFromInt(70)))
	assert.True(t, got.Net.Equal(decimal.NewFromInt(230)))
	assert.Equal(t, int64(2), got.Locations)
	assert.Equal(t, int64(1), got.Assets)
	assert.True(t, got.Purchases.Equal(decimal.NewFromInt(1000)))

	// served from cache: the mock expectations are single-use
	again, err := svc.Summary(context.Background(), 7, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, got, again)
	repo.AssertExpectations(t)

	assert.Equal(t, 1, summaries.InvalidateTags(events.TagDashboard))
}

func TestSummary_PropagatesErrors(t *testing.T) {
	repo := new(mockDashboardRepo)
	svc := NewService(repo, nil, cache.NewTagged[Summary](time.Minute))

	boom := errors.New("boom")
	repo.On("LocationTotals", mock.Anything, mock.Anything).Return(decimal.Zero, int64(0), nil)
	repo.On("ExpenseTotal", mock.Anything, mock.Anything).Return(decimal.Zero, boom)
	repo.On("AssetTotals", mock.Anything, mock.Anything).Return(int64(0), decimal.Zero, nil)

	_, err := svc.Summary(context.Background(), 1, nil, nil)
	assert.ErrorIs(t, err, boom)
}

func TestSummary_RejectsInvertedRange(t *testing.T) {
	svc := NewService(new(mockDashboardRepo), nil, cache.NewTagged[Summary](time.Minute))
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Summary(context.Background(), 1, &start, &end)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

type ledger struct {
	db    *gorm.DB
	owner *domain.User
	other *domain.User
}

func seedLedger(t *testing.T) *ledger {
	t.Helper()
	db := dbtest.Open(t)
	l := &ledger{db: db, owner: dbtest.SeedUser(t, db, "owner@example.com"), other: dbtest.SeedUser(t, db, "other@example.com")}
	return l
}

func (l *ledger) asset(t *testing.T, by *domain.User, name, price string) *domain.Asset {
	t.Helper()
	a := &domain.Asset{Name: name, Category: "Stands", PurchasePrice: decimal.RequireFromString(price), PurchaseDate: time.Now().UTC()}
	a.Stamp(by.ID)
	require.NoError(t, l.db.Create(a).Error)
	return a
}

func (l *ledger) location(t *testing.T, by *domain.User, a *domain.Asset, date time.Time, price string, status domain.LocationStatus) {
	t.Helper()
	loc := &domain.Location{AssetID: a.ID, Date: date, Price: decimal.RequireFromString(price), LocationStatus: status}
	loc.Stamp(by.ID)
	require.NoError(t, l.db.Create(loc).Error)
}

func TestSummary_AgainstDatabase(t *testing.T) {
	l := seedLedger(t)
	booth := l.asset(t, l.owner, "Booth A", "1000")
	l.asset(t, l.other, "Tent", "400")

	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	l.location(t, l.owner, booth, jan, "100", domain.LocationCompleted)
	l.location(t, l.owner, booth, mar, "200", domain.LocationCompleted)
	l.location(t, l.other, booth, mar, "999", domain.LocationCompleted)

	e := &domain.Expense{Name: "Insurance", Cost: decimal.NewFromInt(50)}
	e.Stamp(l.owner.ID)
	require.NoError(t, l.db.Create(e).Error)

	svc := NewService(repository.NewDashboardRepository(l.db), repository.NewLocationRepository(l.db), cache.NewTagged[Summary](0))

	all, err := svc.Summary(context.Background(), l.owner.ID, nil, nil)
	require.NoError(t, err)
	assert.True(t, all.Revenue.Equal(decimal.NewFromInt(300)))
	assert.True(t, all.Expenses.Equal(decimal.NewFromInt(50)))
	assert.True(t, all.Net.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, int64(2), all.Locations)
	assert.Equal(t, int64(1), all.Assets)
	assert.True(t, all.Purchases.Equal(decimal.NewFromInt(1000)))

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	march, err := svc.Summary(context.Background(), l.owner.ID, &start, &end)
	require.NoError(t, err)
	assert.True(t, march.Revenue.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, int64(1), march.Locations)
	assert.True(t, march.Expenses.IsZero())
}

func TestTrendsAndSeries(t *testing.T) {
	l := seedLedger(t)
	booth := l.asset(t, l.owner, "Booth A", "1000")
	tent := l.asset(t, l.owner, "Tent", "400")

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	l.location(t, l.owner, booth, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "300", domain.LocationCompleted)
	l.location(t, l.owner, tent, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), "120", domain.LocationPlanned)
	l.location(t, l.owner, tent, time.Date(2023, 3, 2, 0, 0, 0, 0, time.UTC), "80", domain.LocationCancelled)
	l.location(t, l.other, booth, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), "50", domain.LocationPlanned)

	svc := NewService(repository.NewDashboardRepository(l.db), repository.NewLocationRepository(l.db), cache.NewTagged[Summary](0))
	svc.now = func() time.Time { return now }

	trends, err := svc.Trends(context.Background(), l.owner.ID)
	require.NoError(t, err)
	require.Len(t, trends.MonthlyRevenue, 12)
	assert.Equal(t, "2023-07", trends.MonthlyRevenue[0].Key)
	assert.Equal(t, "2024-06", trends.MonthlyRevenue[11].Key)
	assert.True(t, trends.MonthlyRevenue[11].Revenue.Equal(decimal.NewFromInt(300)))
	assert.True(t, trends.MonthlyRevenue[9].Revenue.Equal(decimal.NewFromInt(120)))
	require.Len(t, trends.TopAssets, 2)
	assert.Equal(t, "Booth A", trends.TopAssets[0].AssetName)
	assert.Equal(t, 1, trends.StatusCounts[domain.LocationCompleted])
	assert.Equal(t, 1, trends.StatusCounts[domain.LocationPlanned])
	assert.Equal(t, 0, trends.StatusCounts[domain.LocationCancelled])

	series, err := svc.LocationSeries(context.Background(), charts.GroupByYear, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Booth A", "Tent"}, series.Keys)
	require.Len(t, series.Rows, 2)
	assert.Equal(t, 1, series.Rows[0].Counts["Tent"])
	assert.Equal(t, 2, series.Rows[1].Counts["Booth A"])

	only, err := svc.LocationSeries(context.Background(), charts.GroupByMonth, &tent.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tent"}, only.Keys)
	assert.Len(t, only.Buckets, 14)
}

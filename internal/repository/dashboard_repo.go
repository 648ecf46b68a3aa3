package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"rentledger/internal/pkg/finance"
)

// DashboardFilter scopes the dashboard aggregates to one user and an optional time range.
type DashboardFilter struct {
	UserID int64
	Start  *time.Time
	End    *time.Time
}

// DashboardRepository builds the aggregate queries with goqu and runs them through gorm,
// so the same SQL works on PostgreSQL and SQLite.
type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) LocationTotals(ctx context.Context, f DashboardFilter) (decimal.Decimal, int64, error) {
	ds := goqu.From("locations").
		Select("price").
		Where(goqu.Ex{"created_by_id": f.UserID})
	ds = withRange(ds, "date", f)

	prices, err := r.money(ctx, ds)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("location totals: %w", err)
	}
	return finance.Sum(prices...), int64(len(prices)), nil
}

func (r *DashboardRepository) ExpenseTotal(ctx context.Context, f DashboardFilter) (decimal.Decimal, error) {
	ds := goqu.From("expenses").
		Select("cost").
		Where(goqu.Ex{"created_by_id": f.UserID})
	ds = withRange(ds, "created_at", f)

	costs, err := r.money(ctx, ds)
	if err != nil {
		return decimal.Zero, fmt.Errorf("expense total: %w", err)
	}
	return finance.Sum(costs...), nil
}

// AssetTotals counts the user's assets and sums what they cost to buy.
func (r *DashboardRepository) AssetTotals(ctx context.Context, userID int64) (int64, decimal.Decimal, error) {
	ds := goqu.From("assets").
		Select("purchase_price").
		Where(goqu.Ex{"created_by_id": userID})

	prices, err := r.money(ctx, ds)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("asset totals: %w", err)
	}
	return int64(len(prices)), finance.Sum(prices...), nil
}

func withRange(ds *goqu.SelectDataset, column string, f DashboardFilter) *goqu.SelectDataset {
	if f.Start != nil {
		ds = ds.Where(goqu.C(column).Gte(*f.Start))
	}
	if f.End != nil {
		ds = ds.Where(goqu.C(column).Lte(*f.End))
	}
	return ds
}

// money reads a single money column row by row. SQLite stores numeric values as REAL and
// SUM would add them in floating point, so totals are added up with decimal arithmetic instead.
func (r *DashboardRepository) money(ctx context.Context, ds *goqu.SelectDataset) ([]decimal.Decimal, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return scanMoney(r.db.WithContext(ctx).Raw(query, args...))
}

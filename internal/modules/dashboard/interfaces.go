package dashboard

import (
	"context"

	"github.com/shopspring/decimal"

	"rentledger/internal/domain"
	"rentledger/internal/repository"
)

type DashboardRepositoryInterface interface {
	LocationTotals(ctx context.Context, f repository.DashboardFilter) (decimal.Decimal, int64, error)
	ExpenseTotal(ctx context.Context, f repository.DashboardFilter) (decimal.Decimal, error)
	AssetTotals(ctx context.Context, userID int64) (int64, decimal.Decimal, error)
}

type LocationLister interface {
	ListWithAsset(ctx context.Context, f repository.LocationFilter) ([]domain.Location, error)
}

type SummaryCache interface {
	Get(key string) (Summary, bool)
	Set(key string, value Summary, tags ...string)
}

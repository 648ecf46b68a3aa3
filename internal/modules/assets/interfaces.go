package assets

import (
	"context"

	"github.com/shopspring/decimal"

	"rentledger/internal/domain"
)

type AssetRepositoryInterface interface {
	ListWithActivity(ctx context.Context) ([]domain.Asset, error)
	GetWithActivity(ctx context.Context, id int64) (*domain.Asset, error)
	GetByID(ctx context.Context, id int64) (*domain.Asset, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, a *domain.Asset) error
	Update(ctx context.Context, a *domain.Asset) error
	Delete(ctx context.Context, id int64) error
}

// GlobalExpenseReader sums the expenses shared across all assets.
type GlobalExpenseReader interface {
	GlobalTotal(ctx context.Context) (decimal.Decimal, error)
}

type ListCache interface {
	Get(key string) ([]AssetView, bool)
	Set(key string, value []AssetView, tags ...string)
}

type Invalidator interface {
	Invalidate(ctx context.Context, tags ...string)
}

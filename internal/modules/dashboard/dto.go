package dashboard

import (
	"github.com/shopspring/decimal"

	"rentledger/internal/domain"
	"rentledger/internal/pkg/charts"
)

// Summary is the dashboard for one user over an optional date range.
type Summary struct {
	Revenue   decimal.Decimal `json:"revenue"`
	Expenses  decimal.Decimal `json:"expenses"`
	Net       decimal.Decimal `json:"net"`
	Locations int64           `json:"locations"`
	Assets    int64           `json:"assets"`
	Purchases decimal.Decimal `json:"purchases"`
}

type Trends struct {
	MonthlyRevenue []charts.RevenuePoint         `json:"monthlyRevenue"`
	TopAssets      []charts.AssetRevenue         `json:"topAssets"`
	StatusCounts   map[domain.LocationStatus]int `json:"statusCounts"`
}

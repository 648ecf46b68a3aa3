// Package finance computes revenue, expenses and net figures over decimal money values.
package finance

import (
	"github.com/shopspring/decimal"

	"rentledger/internal/domain"
)

// AssetFigures are the per-asset aggregates returned by the asset list and detail routes.
type AssetFigures struct {
	Revenue        decimal.Decimal `json:"revenue"`
	DirectExpenses decimal.Decimal `json:"directExpenses"`
	GlobalShare    decimal.Decimal `json:"globalShare"`
	Expenses       decimal.Decimal `json:"expenses"`
	Profitability  decimal.Decimal `json:"profitability"`
	Net            decimal.Decimal `json:"net"`
}

// Summary is the dashboard triple.
type Summary struct {
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

func Revenue(locations []domain.Location) decimal.Decimal {
	total := decimal.Zero
	for _, l := range locations {
		total = total.Add(l.Price)
	}
	return total
}

func DirectExpenses(locations []domain.Location) decimal.Decimal {
	total := decimal.Zero
	for _, l := range locations {
		for _, e := range l.Expenses {
			total = total.Add(e.Cost)
		}
	}
	return total
}

// GlobalShare splits the global expense total evenly; zero when there are no assets.
func GlobalShare(globalTotal decimal.Decimal, assetCount int64) decimal.Decimal {
	if assetCount <= 0 {
		return decimal.Zero
	}
	return globalTotal.Div(decimal.NewFromInt(assetCount))
}

func ForAsset(a *domain.Asset, globalTotal decimal.Decimal, assetCount int64) AssetFigures {
	revenue := Revenue(a.Locations)
	direct := DirectExpenses(a.Locations)
	share := GlobalShare(globalTotal, assetCount)
	total := direct.Add(share)

	return AssetFigures{
		Revenue:        revenue,
		DirectExpenses: direct,
		GlobalShare:    share,
		Expenses:       total,
		Profitability:  revenue.Sub(direct),
		Net:            revenue.Sub(total).Sub(a.PurchasePrice),
	}
}

func Summarize(revenue, expenses decimal.Decimal) Summary {
	return Summary{
		Revenue:  revenue,
		Expenses: expenses,
		Net:      revenue.Sub(expenses),
	}
}

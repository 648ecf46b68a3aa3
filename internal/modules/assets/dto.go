package assets

import (
	"github.com/shopspring/decimal"

	"rentledger/internal/domain"
	"rentledger/internal/pkg/finance"
)

const defaultCategory = "General"

type CreateAssetRequest struct {
	Name          string           `json:"name" validate:"required"`
	Category      *string          `json:"category" validate:"omitnil,min=1"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice" validate:"required,gte=0,cents"`
	PurchaseDate  *string          `json:"purchaseDate" validate:"omitnil,date"`
	Status        *string          `json:"status" validate:"omitnil,assetstatus"`
}

type UpdateAssetRequest struct {
	Name          *string          `json:"name" validate:"omitnil,min=1"`
	Category      *string          `json:"category" validate:"omitnil,min=1"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice" validate:"omitnil,gte=0,cents"`
	PurchaseDate  *string          `json:"purchaseDate" validate:"omitnil,date"`
	Status        *string          `json:"status" validate:"omitnil,assetstatus"`
}

// AssetView is an asset with its profitability figures.
type AssetView struct {
	domain.Asset
	finance.AssetFigures
	LocationsCount int `json:"locationsCount"`
}

func newView(a domain.Asset, globalTotal decimal.Decimal, assetCount int64, withLocations bool) AssetView {
	v := AssetView{
		Asset:          a,
		AssetFigures:   finance.ForAsset(&a, globalTotal, assetCount),
		LocationsCount: len(a.Locations),
	}
	if !withLocations {
		v.Locations = nil
	}
	return v
}

package locations

import "github.com/shopspring/decimal"

type CreateLocationRequest struct {
	AssetID        int64            `json:"assetId" validate:"required,gt=0"`
	Date           *string          `json:"date" validate:"omitnil,date"`
	Price          *decimal.Decimal `json:"price" validate:"required,gte=0,cents"`
	ClientName     *string          `json:"clientName" validate:"omitnil,max=255"`
	LocationStatus *string          `json:"locationStatus" validate:"omitnil,locationstatus"`
}

type UpdateLocationRequest struct {
	AssetID        *int64           `json:"assetId" validate:"omitnil,gt=0"`
	Date           *string          `json:"date" validate:"omitnil,date"`
	Price          *decimal.Decimal `json:"price" validate:"omitnil,gte=0,cents"`
	ClientName     *string          `json:"clientName" validate:"omitnil,max=255"`
	LocationStatus *string          `json:"locationStatus" validate:"omitnil,locationstatus"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AssetStatus string

const (
	AssetAvailable   AssetStatus = "AVAILABLE"
	AssetRented      AssetStatus = "RENTED"
	AssetMaintenance AssetStatus = "MAINTENANCE"
)

func (s AssetStatus) Valid() bool {
	switch s {
	case AssetAvailable, AssetRented, AssetMaintenance:
		return true
	}
	return false
}

type Asset struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"size:255;not null"`
	Category      string          `json:"category" gorm:"size:255;not null"`
	Status        AssetStatus     `json:"status" gorm:"size:16;not null;default:AVAILABLE"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" gorm:"type:numeric(12,2);not null;default:0"`
	PurchaseDate  time.Time       `json:"purchaseDate" gorm:"not null"`
	Locations     []Location      `json:"locations,omitempty" gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	Audit
}

func (Asset) TableName() string { return "assets" }

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LocationStatus string

const (
	LocationPlanned   LocationStatus = "PLANNED"
	LocationCompleted LocationStatus = "COMPLETED"
	LocationCancelled LocationStatus = "CANCELLED"
)

func (s LocationStatus) Valid() bool {
	switch s {
	case LocationPlanned, LocationCompleted, LocationCancelled:
		return true
	}
	return false
}

// Location is one rental event of an asset.
type Location struct {
	ID             int64           `json:"id" gorm:"primaryKey"`
	AssetID        int64           `json:"assetId" gorm:"not null;index"`
	Asset          *Asset          `json:"asset,omitempty" gorm:"foreignKey:AssetID"`
	Date           time.Time       `json:"date" gorm:"not null;index"`
	Price          decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null;default:0"`
	ClientName     *string         `json:"clientName" gorm:"size:255"`
	LocationStatus LocationStatus  `json:"locationStatus" gorm:"size:16;not null;default:PLANNED"`
	Expenses       []Expense       `json:"expenses,omitempty" gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE"`
	Audit
}

func (Location) TableName() string { return "locations" }

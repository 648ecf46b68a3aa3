package expenses

import "github.com/shopspring/decimal"

// ExpenseRequest serves both create and update. On create, name and cost may
// come from the template instead.
type ExpenseRequest struct {
	Name       *string          `json:"name" validate:"omitnil,min=1,max=255"`
	Cost       *decimal.Decimal `json:"cost" validate:"omitnil,gte=0,cents"`
	LocationID *int64           `json:"locationId" validate:"omitnil,gt=0"`
	TemplateID *int64           `json:"templateId" validate:"omitnil,gt=0"`
}

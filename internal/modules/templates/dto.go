package templates

import "github.com/shopspring/decimal"

type CreateTemplateRequest struct {
	Name        string           `json:"name" validate:"required,max=255"`
	DefaultCost *decimal.Decimal `json:"defaultCost" validate:"omitnil,gte=0,cents"`
}

// UpdateTemplateRequest leaves omitted fields untouched. A defaultCost can be
// cleared with clearDefaultCost.
type UpdateTemplateRequest struct {
	Name             *string          `json:"name" validate:"omitnil,min=1,max=255"`
	DefaultCost      *decimal.Decimal `json:"defaultCost" validate:"omitnil,gte=0,cents"`
	ClearDefaultCost bool             `json:"clearDefaultCost"`
}

package domain

import "github.com/shopspring/decimal"

// Expense without a location is global: it is shared evenly across all assets.
type Expense struct {
	ID         int64            `json:"id" gorm:"primaryKey"`
	Name       string           `json:"name" gorm:"size:255;not null"`
	Cost       decimal.Decimal  `json:"cost" gorm:"type:numeric(12,2);not null;default:0"`
	LocationID *int64           `json:"locationId" gorm:"index"`
	Location   *Location        `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	TemplateID *int64           `json:"templateId" gorm:"index"`
	Template   *ExpenseTemplate `json:"template,omitempty" gorm:"foreignKey:TemplateID;constraint:OnDelete:SET NULL"`
	Audit
}

func (Expense) TableName() string { return "expenses" }

func (e *Expense) IsGlobal() bool { return e.LocationID == nil }

type ExpenseTemplate struct {
	ID          int64               `json:"id" gorm:"primaryKey"`
	Name        string              `json:"name" gorm:"size:255;not null"`
	DefaultCost decimal.NullDecimal `json:"defaultCost" gorm:"type:numeric(12,2)"`
	Audit
}

func (ExpenseTemplate) TableName() string { return "expense_templates" }

// Models lists every table managed by the application, in dependency order.
func Models() []any {
	return []any{&User{}, &Asset{}, &Location{}, &ExpenseTemplate{}, &Expense{}}
}

package expenses

import "errors"

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrTemplateMissing = errors.New("referenced template does not exist")
	ErrLocationMissing = errors.New("referenced location does not exist")
	ErrNameMissing     = errors.New("expense name missing")
	ErrCostMissing     = errors.New("expense cost missing")
)

package expenses

import (
	"context"

	"rentledger/internal/domain"
)

type ExpenseRepositoryInterface interface {
	List(ctx context.Context) ([]domain.Expense, error)
	GetDetail(ctx context.Context, id int64) (*domain.Expense, error)
	GetByID(ctx context.Context, id int64) (*domain.Expense, error)
	Create(ctx context.Context, e *domain.Expense) error
	Update(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, id int64) error
}

type TemplateReader interface {
	GetByID(ctx context.Context, id int64) (*domain.ExpenseTemplate, error)
}

type LocationChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Invalidator interface {
	Invalidate(ctx context.Context, tags ...string)
}

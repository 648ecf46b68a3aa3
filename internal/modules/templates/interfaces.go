package templates

import (
	"context"

	"rentledger/internal/domain"
)

type TemplateRepositoryInterface interface {
	List(ctx context.Context) ([]domain.ExpenseTemplate, error)
	GetByID(ctx context.Context, id int64) (*domain.ExpenseTemplate, error)
	Create(ctx context.Context, t *domain.ExpenseTemplate) error
	Update(ctx context.Context, t *domain.ExpenseTemplate) error
	Delete(ctx context.Context, id int64) error
}

type Invalidator interface {
	Invalidate(ctx context.Context, tags ...string)
}

package locations

import (
	"context"

	"rentledger/internal/domain"
)

type LocationRepositoryInterface interface {
	List(ctx context.Context) ([]domain.Location, error)
	GetDetail(ctx context.Context, id int64) (*domain.Location, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	Create(ctx context.Context, l *domain.Location) error
	Update(ctx context.Context, l *domain.Location) error
	Delete(ctx context.Context, id int64) error
}

type AssetChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Invalidator interface {
	Invalidate(ctx context.Context, tags ...string)
}

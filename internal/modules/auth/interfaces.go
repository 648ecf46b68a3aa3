package auth

import (
	"context"

	"rentledger/internal/domain"
)

// UserRepositoryInterface lists the user lookups the auth service needs.
type UserRepositoryInterface interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type tokenIssuer interface {
	GenerateToken(userID int64, email string) (string, error)
}

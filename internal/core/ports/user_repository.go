package ports

import (
	"context"

	"github.com/ManuelTrajcev/SQAT-Project/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteByUsername(ctx context.Context, username string) error
}

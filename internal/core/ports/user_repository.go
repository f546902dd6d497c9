package ports

import (
	"context"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Create must return domain.ErrEmailTaken when the store rejects a duplicate email.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

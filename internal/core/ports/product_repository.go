package ports

import (
	"context"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// ProductRepository defines persistence operations for products.
// Lookups by an unknown or malformed id return domain.ErrProductNotFound.
type ProductRepository interface {
	Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	// Replace overwrites every field; a nil quantity removes it from the document.
	Replace(ctx context.Context, id string, in domain.ProductInput) error
	Update(ctx context.Context, id string, patch domain.ProductPatch) error
	Delete(ctx context.Context, id string) error
}

// ProductCache is an optional read-through cache in front of FindByID.
// Implementations return (nil, nil) on a miss.
type ProductCache interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	Set(ctx context.Context, p *domain.Product) error
	Invalidate(ctx context.Context, id string) error
}

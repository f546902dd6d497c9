package ports

import (
	"context"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// ProductService defines use-case operations for the catalog.
type ProductService interface {
	Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	Replace(ctx context.Context, id string, in domain.ProductInput) error
	Update(ctx context.Context, id string, patch domain.ProductPatch) error
	Delete(ctx context.Context, id string) error
}

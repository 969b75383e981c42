package ports

import (
	"context"

	"github.com/avatarctic/wishlist-api/internal/core/domain/product"
)

// ProductCatalog is the outbound client of the external product API.
// A missing product is reported as product.ErrNotFound.
type ProductCatalog interface {
	ListProducts(ctx context.Context, page int) (*product.Page, error)
	GetProduct(ctx context.Context, id string) (*product.Product, error)
}

// ProductService exposes the catalog with application error semantics
type ProductService interface {
	Index(ctx context.Context, page int) (*product.Page, error)
	Show(ctx context.Context, id string) (*product.Product, error)
}

package ports

import (
	"context"

	"github.com/avatarctic/wishlist-api/internal/core/domain/favorite"
)

// FavoriteRepository defines the data access operations for favorite products.
// Every lookup is scoped to the owning client.
type FavoriteRepository interface {
	Create(ctx context.Context, f *favorite.FavoriteProduct) error
	List(ctx context.Context, clientID string, filter favorite.Filter) ([]*favorite.FavoriteProduct, error)
	GetByID(ctx context.Context, clientID, id string) (*favorite.FavoriteProduct, error)
	GetByProduct(ctx context.Context, clientID, productID string) (*favorite.FavoriteProduct, error)
	Delete(ctx context.Context, clientID, id string) error
	DeleteByProduct(ctx context.Context, clientID, productID string) error
	DeleteByClient(ctx context.Context, clientID string) (int64, error)
}

// FavoriteService defines the favorite reconciliation rules
type FavoriteService interface {
	Store(ctx context.Context, clientID, productID string) (*favorite.FavoriteProduct, error)
	Index(ctx context.Context, clientID string) ([]*favorite.FavoriteProduct, error)
	Show(ctx context.Context, clientID, id string) (*favorite.FavoriteProduct, error)
	ShowByProduct(ctx context.Context, clientID, productID string) (*favorite.FavoriteProduct, error)
	Delete(ctx context.Context, clientID, id string) error
	DeleteByProduct(ctx context.Context, clientID, productID string) error
}

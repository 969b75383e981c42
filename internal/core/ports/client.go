package ports

import (
	"context"

	"github.com/avatarctic/wishlist-api/internal/core/domain/client"
)

// ClientRepository defines the data access operations for client accounts.
// Lookups that match nothing return client.ErrNotFound.
type ClientRepository interface {
	Create(ctx context.Context, c *client.Client) error
	GetByID(ctx context.Context, id string) (*client.Client, error)
	GetByEmail(ctx context.Context, email string) (*client.Client, error)
	List(ctx context.Context, filter client.Filter) ([]*client.Client, error)
	UpdateName(ctx context.Context, id, name string) (*client.Client, error)
	ConfirmEmail(ctx context.Context, id string) (*client.Client, error)
	Delete(ctx context.Context, id string) error
}

// ClientService defines the client business rules
type ClientService interface {
	Store(ctx context.Context, req *client.CreateClientRequest) (*client.Client, error)
	Index(ctx context.Context, filter client.Filter) ([]*client.Client, error)
	FindByEmail(ctx context.Context, email string) (*client.Client, error)
	Show(ctx context.Context, id string) (*client.Client, error)
	UpdateName(ctx context.Context, id, name string) (*client.Client, error)
	Delete(ctx context.Context, id string) error
	ConfirmEmail(ctx context.Context, id string) (*client.Client, error)
}

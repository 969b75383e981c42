package favorite

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by repositories when no favorite matches.
	ErrNotFound = errors.New("favorite product not found")
	// ErrDuplicate is returned when the (client, product) unique index rejects an insert.
	ErrDuplicate = errors.New("favorite product already exists")
)

// FavoriteProduct links a client to a product of the external catalog.
type FavoriteProduct struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"clientId"`
	ProductID string    `json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Filter narrows a client's favorite listing. Empty fields are ignored.
type Filter struct {
	ProductID string
}

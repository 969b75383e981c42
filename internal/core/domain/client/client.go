package client

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned by repositories when no client matches.
	ErrNotFound = errors.New("client not found")
	// ErrEmailTaken is returned when the unique email index rejects an insert.
	ErrEmailTaken = errors.New("client email already registered")
)

type Client struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	EmailConfirmation bool      `json:"emailConfirmation"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Filter narrows client listings. Empty fields are ignored.
type Filter struct {
	ID    string
	Email string
}

// CreateClientRequest represents the signup payload
type CreateClientRequest struct {
	Name  string `json:"name" validate:"required,max=60"`
	Email string `json:"email" validate:"required,email,max=120"`
}

// UpdateClientRequest represents the name update payload
type UpdateClientRequest struct {
	Name string `json:"name" validate:"required,max=60"`
}

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

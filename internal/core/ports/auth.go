package ports

import (
	"context"
	"time"

	"github.com/avatarctic/wishlist-api/internal/core/domain/auth"
)

// TokenService issues and verifies client bearer tokens
type TokenService interface {
	Issue(clientID string, ttl time.Duration) (string, error)
	IssueDefault(clientID string) (string, error)
	Verify(token string, ignoreExpiration bool) (*auth.Claims, error)
}

// AuthService defines the authentication flows
type AuthService interface {
	Authenticate(ctx context.Context, req *auth.AuthenticateRequest) (*auth.TokenResponse, error)
	Refresh(ctx context.Context, clientID string) (*auth.TokenResponse, error)
}

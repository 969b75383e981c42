package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthenticateRequest represents the login payload
type AuthenticateRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TokenResponse is returned by the authenticate and refresh endpoints
type TokenResponse struct {
	Token string `json:"token"`
}

// Claims binds a bearer token to a client
type Claims struct {
	ClientID string `json:"clientId"`

	jwt.RegisteredClaims
}

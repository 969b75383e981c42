package helpers

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/wishlist-api/internal/core/apperror"
)

// GetClientIDFromContext returns the client id set by the JWT middleware.
func GetClientIDFromContext(c echo.Context) (string, error) {
	id, ok := GetClientIDRaw(c)
	if !ok {
		return "", apperror.ErrTokenInvalid
	}
	return id, nil
}

// RequireSameClient rejects access to another client's resources.
func RequireSameClient(c echo.Context, targetID string) (string, error) {
	id, err := GetClientIDFromContext(c)
	if err != nil {
		return "", err
	}
	if id != targetID {
		return "", apperror.ErrRestrictedAccess
	}
	return id, nil
}

// GetJWTTokenFromContext extracts the bearer token from the Authorization header.
// The header must hold exactly two space separated parts with a Bearer scheme.
func GetJWTTokenFromContext(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", apperror.ErrJWTMissing
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 {
		return "", apperror.ErrTokenInvalid
	}
	if !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperror.ErrTokenInvalid
	}
	return parts[1], nil
}

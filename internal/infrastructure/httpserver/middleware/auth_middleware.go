package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/wishlist-api/internal/core/ports"
	"github.com/avatarctic/wishlist-api/internal/infrastructure/httpserver/helpers"
)

type JWTMiddleware struct {
	tokens ports.TokenService
	logger *logrus.Logger
}

func NewJWTMiddleware(tokens ports.TokenService, logger *logrus.Logger) *JWTMiddleware {
	return &JWTMiddleware{tokens: tokens, logger: logger}
}

// RequireJWT validates the bearer token and sets the client context.
func (m *JWTMiddleware) RequireJWT() echo.MiddlewareFunc {
	return m.handler(false)
}

// RequireJWTAllowExpired accepts expired but otherwise valid tokens. Only the
// refresh route uses it.
func (m *JWTMiddleware) RequireJWTAllowExpired() echo.MiddlewareFunc {
	return m.handler(true)
}

func (m *JWTMiddleware) handler(ignoreExpiration bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := helpers.GetJWTTokenFromContext(c)
			if err != nil {
				return err
			}

			claims, err := m.tokens.Verify(tokenString, ignoreExpiration)
			if err != nil {
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{"ip": c.RealIP(), "path": c.Request().URL.Path, "error": err.Error()}).Warn("JWT validation failed")
				}
				return err
			}

			helpers.SetClientID(c, claims.ClientID)

			if m.logger != nil {
				m.logger.WithFields(logrus.Fields{"client_id": claims.ClientID}).Debug("jwt validated and client context set")
			}
			return next(c)
		}
	}
}

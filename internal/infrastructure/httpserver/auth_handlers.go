package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/wishlist-api/internal/core/domain/auth"
	"github.com/avatarctic/wishlist-api/internal/infrastructure/httpserver/helpers"
)

func (s *Server) authenticate(c echo.Context) error {
	var req auth.AuthenticateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, err := s.authSvc.Authenticate(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokens)
}

func (s *Server) refreshToken(c echo.Context) error {
	clientID, err := helpers.GetClientIDFromContext(c)
	if err != nil {
		return err
	}

	tokens, err := s.authSvc.Refresh(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokens)
}

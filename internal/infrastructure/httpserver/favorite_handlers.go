package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/wishlist-api/internal/infrastructure/httpserver/helpers"
)

func (s *Server) createFavorite(c echo.Context) error {
	clientID, err := helpers.GetClientIDFromContext(c)
	if err != nil {
		return err
	}
	fav, err := s.favoriteService.Store(c.Request().Context(), clientID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, fav)
}

func (s *Server) listFavorites(c echo.Context) error {
	clientID, err := helpers.GetClientIDFromContext(c)
	if err != nil {
		return err
	}
	favs, err := s.favoriteService.Index(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, favs)
}

func (s *Server) getFavorite(c echo.Context) error {
	clientID, err := helpers.GetClientIDFromContext(c)
	if err != nil {
		return err
	}
	fav, err := s.favoriteService.Show(c.Request().Context(), clientID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fav)
}

func (s *Server) getFavoriteByProduct(c echo.Context) error {
	clientID, err := helpers.GetClientIDFromContext(c)
	if err != nil {
		return err
	}
	fav, err := s.favoriteService.ShowByProduct(c.Request().Context(), clientID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fav)
}

func (s *Server) deleteFavorite(c echo.Context) error {
	clientID, err := helpers.GetClientIDFromContext(c)
	if err != nil {
		return err
	}
	if err := s.favoriteService.Delete(c.Request().Context(), clientID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteFavoriteByProduct(c echo.Context) error {
	clientID, err := helpers.GetClientIDFromContext(c)
	if err != nil {
		return err
	}
	if err := s.favoriteService.DeleteByProduct(c.Request().Context(), clientID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/wishlist-api/internal/core/domain/client"
	"github.com/avatarctic/wishlist-api/internal/infrastructure/httpserver/helpers"
)

type signupResponse struct {
	User  *client.Client `json:"user"`
	Token string         `json:"token"`
}

type confirmationResponse struct {
	Message string         `json:"message"`
	User    *client.Client `json:"user"`
}

func (s *Server) createClient(c echo.Context) error {
	var req client.CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := s.clientService.Store(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	token, err := s.tokens.IssueDefault(created.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, signupResponse{User: created, Token: token})
}

// listClients only ever exposes the caller's own record.
func (s *Server) listClients(c echo.Context) error {
	clientID, err := helpers.GetClientIDFromContext(c)
	if err != nil {
		return err
	}
	clients, err := s.clientService.Index(c.Request().Context(), client.Filter{ID: clientID})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

func (s *Server) getClient(c echo.Context) error {
	id, err := helpers.RequireSameClient(c, c.Param("id"))
	if err != nil {
		return err
	}
	found, err := s.clientService.Show(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, found)
}

func (s *Server) updateClient(c echo.Context) error {
	id, err := helpers.RequireSameClient(c, c.Param("id"))
	if err != nil {
		return err
	}

	var req client.UpdateClientRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := s.clientService.UpdateName(c.Request().Context(), id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteClient(c echo.Context) error {
	id, err := helpers.RequireSameClient(c, c.Param("id"))
	if err != nil {
		return err
	}
	if err := s.clientService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// confirmEmail is the public target of the confirmation link.
func (s *Server) confirmEmail(c echo.Context) error {
	confirmed, err := s.clientService.ConfirmEmail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, confirmationResponse{Message: "E-mail confirmado com sucesso.", User: confirmed})
}

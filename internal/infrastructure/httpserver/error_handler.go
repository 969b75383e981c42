package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/wishlist-api/internal/core/apperror"
)

type errorsBody struct {
	Errors []apperror.Detail `json:"errors"`
}

type validationBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// errorHandler is the only place error responses are shaped.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := s.render(err, c)
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil && s.logger != nil {
		s.logger.WithError(err).Error("failed to write error response")
	}
}

func (s *Server) render(err error, c echo.Context) (int, any) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, validationBody{Message: "Validation fails", Errors: verr.Fields}
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			s.logRequestError(c, err)
		}
		return appErr.Status, errorsBody{Errors: appErr.Details}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		}
		if he.Code >= http.StatusInternalServerError {
			s.logRequestError(c, err)
		}
		return he.Code, map[string]string{"message": msg}
	}

	s.logRequestError(c, err)
	return apperror.ErrInternal.Status, errorsBody{Errors: apperror.ErrInternal.Details}
}

func (s *Server) logRequestError(c echo.Context, err error) {
	if s.logger == nil {
		return
	}
	s.logger.WithFields(logrus.Fields{
		"method":     c.Request().Method,
		"path":       c.Path(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	}).WithError(err).Error("request failed")
}

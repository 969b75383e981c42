package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/wishlist-api/internal/core/apperror"
	"github.com/avatarctic/wishlist-api/internal/core/domain/auth"
	"github.com/avatarctic/wishlist-api/internal/core/ports"
)

type AuthService struct {
	clientService ports.ClientService
	tokens        ports.TokenService
	logger        *logrus.Logger
}

func NewAuthService(clientService ports.ClientService, tokens ports.TokenService, logger *logrus.Logger) ports.AuthService {
	return &AuthService{clientService: clientService, tokens: tokens, logger: logger}
}

// Authenticate looks the client up by email and issues a token for it.
func (s *AuthService) Authenticate(ctx context.Context, req *auth.AuthenticateRequest) (*auth.TokenResponse, error) {
	found, err := s.clientService.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueDefault(found.ID)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"client_id": found.ID}).Info("client authenticated")
	}
	return &auth.TokenResponse{Token: token}, nil
}

// Refresh issues a new token for a client that still exists.
func (s *AuthService) Refresh(ctx context.Context, clientID string) (*auth.TokenResponse, error) {
	if clientID == "" {
		return nil, apperror.ErrTokenInvalid
	}
	if _, err := s.clientService.Show(ctx, clientID); err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueDefault(clientID)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, apperror.ErrFailedRefreshToken.Wrap(appErr.Err)
		}
		return nil, apperror.ErrFailedRefreshToken.Wrap(err)
	}
	return &auth.TokenResponse{Token: token}, nil
}

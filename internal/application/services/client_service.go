package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/wishlist-api/internal/core/apperror"
	"github.com/avatarctic/wishlist-api/internal/core/domain/client"
	"github.com/avatarctic/wishlist-api/internal/core/ports"
)

// ClientServiceConfig groups the client account policies.
type ClientServiceConfig struct {
	// RequireEmailConfirmation makes Show reject accounts whose email was never confirmed.
	RequireEmailConfirmation bool
}

type ClientService struct {
	repo         ports.ClientRepository
	favoriteRepo ports.FavoriteRepository
	emailService ports.EmailService
	cfg          ClientServiceConfig
	logger       *logrus.Logger
}

func NewClientService(repo ports.ClientRepository, favoriteRepo ports.FavoriteRepository, emailService ports.EmailService, cfg ClientServiceConfig, logger *logrus.Logger) ports.ClientService {
	return &ClientService{
		repo:         repo,
		favoriteRepo: favoriteRepo,
		emailService: emailService,
		cfg:          cfg,
		logger:       logger,
	}
}

func (s *ClientService) Store(ctx context.Context, req *client.CreateClientRequest) (*client.Client, error) {
	email := client.NormalizeEmail(req.Email)

	existing, err := s.Index(ctx, client.Filter{Email: email})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, apperror.ErrClientExists
	}

	now := time.Now().UTC()
	newClient := &client.Client{
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, newClient); err != nil {
		if errors.Is(err, client.ErrEmailTaken) {
			return nil, apperror.ErrClientExists
		}
		s.logError("store", logrus.Fields{"email": email}, err)
		return nil, apperror.ErrClientFailedToStore.Wrap(err)
	}

	if s.emailService != nil {
		if err := s.emailService.SendConfirmationEmail(ctx, newClient.Email, newClient.Name, newClient.ID); err != nil {
			// Signup succeeds even when the confirmation mail cannot be delivered
			s.logWarn("store", logrus.Fields{"client_id": newClient.ID, "email": newClient.Email}, apperror.ErrClientFailedToSendEmail.Wrap(err))
		}
	}

	return newClient, nil
}

func (s *ClientService) Index(ctx context.Context, filter client.Filter) ([]*client.Client, error) {
	if filter.Email != "" {
		filter.Email = client.NormalizeEmail(filter.Email)
	}
	result, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logError("index", logrus.Fields{"filter_id": filter.ID, "filter_email": filter.Email}, err)
		return nil, apperror.ErrClientFailedToIndex.Wrap(err)
	}
	return result, nil
}

// FindByEmail returns the client registered with email, ignoring case.
func (s *ClientService) FindByEmail(ctx context.Context, email string) (*client.Client, error) {
	found, err := s.repo.GetByEmail(ctx, client.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, apperror.ErrClientNotFound
		}
		s.logError("find_by_email", logrus.Fields{"email": email}, err)
		return nil, apperror.ErrClientFailedToShow.Wrap(err)
	}
	return found, nil
}

func (s *ClientService) Show(ctx context.Context, id string) (*client.Client, error) {
	return s.show(ctx, id, false)
}

func (s *ClientService) show(ctx context.Context, id string, skipConfirmation bool) (*client.Client, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, apperror.ErrClientNotFound
		}
		s.logError("show", logrus.Fields{"client_id": id}, err)
		return nil, apperror.ErrClientFailedToShow.Wrap(err)
	}

	if s.cfg.RequireEmailConfirmation && !skipConfirmation && !found.EmailConfirmation {
		return nil, apperror.ErrEmailNotConfirmed
	}
	return found, nil
}

func (s *ClientService) UpdateName(ctx context.Context, id, name string) (*client.Client, error) {
	if _, err := s.Show(ctx, id); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateName(ctx, id, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, apperror.ErrClientNotFound
		}
		s.logError("update_name", logrus.Fields{"client_id": id, "name": name}, err)
		return nil, apperror.ErrClientFailedToUpdate.Wrap(err)
	}
	return updated, nil
}

// Delete removes the client's favorite products, then the client itself.
// A failed favorite cleanup leaves the client in place so the call can be retried.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	if _, err := s.show(ctx, id, true); err != nil {
		return err
	}

	if s.favoriteRepo != nil {
		removed, err := s.favoriteRepo.DeleteByClient(ctx, id)
		if err != nil {
			s.logError("delete", logrus.Fields{"client_id": id}, err)
			return apperror.ErrClientFailedToDelete.Wrap(err)
		}
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"client_id": id, "favorites_removed": removed}).Info("client favorites removed")
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return apperror.ErrClientNotFound
		}
		s.logError("delete", logrus.Fields{"client_id": id}, err)
		return apperror.ErrClientFailedToDelete.Wrap(err)
	}
	return nil
}

// ConfirmEmail activates the account behind the confirmation link.
func (s *ClientService) ConfirmEmail(ctx context.Context, id string) (*client.Client, error) {
	if _, err := s.show(ctx, id, true); err != nil {
		return nil, err
	}

	confirmed, err := s.repo.ConfirmEmail(ctx, id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, apperror.ErrClientNotFound
		}
		s.logError("confirm_email", logrus.Fields{"client_id": id}, err)
		return nil, apperror.ErrClientFailedToConfirm.Wrap(err)
	}
	return confirmed, nil
}

func (s *ClientService) logError(op string, fields logrus.Fields, err error) {
	if s.logger == nil {
		return
	}
	s.logger.WithFields(fields).WithField("operation", "client."+op).WithError(err).Error("client service failure")
}

func (s *ClientService) logWarn(op string, fields logrus.Fields, err error) {
	if s.logger == nil {
		return
	}
	s.logger.WithFields(fields).WithField("operation", "client."+op).WithError(err).Warn("client service degraded")
}

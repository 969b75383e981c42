package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/wishlist-api/internal/core/apperror"
	"github.com/avatarctic/wishlist-api/internal/core/domain/favorite"
	"github.com/avatarctic/wishlist-api/internal/core/ports"
)

type FavoriteService struct {
	repo     ports.FavoriteRepository
	products ports.ProductService
	logger   *logrus.Logger
}

func NewFavoriteService(repo ports.FavoriteRepository, products ports.ProductService, logger *logrus.Logger) ports.FavoriteService {
	return &FavoriteService{repo: repo, products: products, logger: logger}
}

// Store favorites productID for clientID. The pair must not be stored yet and
// the product must exist in the upstream catalog.
func (s *FavoriteService) Store(ctx context.Context, clientID, productID string) (*favorite.FavoriteProduct, error) {
	existing, err := s.repo.List(ctx, clientID, favorite.Filter{ProductID: productID})
	if err != nil {
		s.logError("store", logrus.Fields{"client_id": clientID, "product_id": productID}, err)
		return nil, apperror.ErrFavoriteFailedToStore.Wrap(err)
	}
	if len(existing) > 0 {
		return nil, apperror.ErrDuplicateFavorite
	}

	if _, err := s.products.Show(ctx, productID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fav := &favorite.FavoriteProduct{
		ClientID:  clientID,
		ProductID: productID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, fav); err != nil {
		if errors.Is(err, favorite.ErrDuplicate) {
			return nil, apperror.ErrDuplicateFavorite
		}
		s.logError("store", logrus.Fields{"client_id": clientID, "product_id": productID}, err)
		return nil, apperror.ErrFavoriteFailedToStore.Wrap(err)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"client_id": clientID, "product_id": productID, "favorite_id": fav.ID}).Info("product favorited")
	}
	return fav, nil
}

func (s *FavoriteService) Index(ctx context.Context, clientID string) ([]*favorite.FavoriteProduct, error) {
	result, err := s.repo.List(ctx, clientID, favorite.Filter{})
	if err != nil {
		s.logError("index", logrus.Fields{"client_id": clientID}, err)
		return nil, apperror.ErrFavoriteFailedToIndex.Wrap(err)
	}
	return result, nil
}

func (s *FavoriteService) Show(ctx context.Context, clientID, id string) (*favorite.FavoriteProduct, error) {
	result, err := s.repo.GetByID(ctx, clientID, id)
	if err != nil {
		return nil, s.lookupError("show", clientID, id, err)
	}
	return result, nil
}

func (s *FavoriteService) ShowByProduct(ctx context.Context, clientID, productID string) (*favorite.FavoriteProduct, error) {
	result, err := s.repo.GetByProduct(ctx, clientID, productID)
	if err != nil {
		return nil, s.lookupError("show_by_product", clientID, productID, err)
	}
	return result, nil
}

func (s *FavoriteService) Delete(ctx context.Context, clientID, id string) error {
	if _, err := s.Show(ctx, clientID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, clientID, id); err != nil {
		return s.deleteError("delete", clientID, id, err)
	}
	return nil
}

func (s *FavoriteService) DeleteByProduct(ctx context.Context, clientID, productID string) error {
	if _, err := s.ShowByProduct(ctx, clientID, productID); err != nil {
		return err
	}
	if err := s.repo.DeleteByProduct(ctx, clientID, productID); err != nil {
		return s.deleteError("delete_by_product", clientID, productID, err)
	}
	return nil
}

func (s *FavoriteService) lookupError(op, clientID, ref string, err error) error {
	if errors.Is(err, favorite.ErrNotFound) {
		return apperror.ErrFavoriteNotFound
	}
	s.logError(op, logrus.Fields{"client_id": clientID, "ref": ref}, err)
	return apperror.ErrFavoriteFailedToShow.Wrap(err)
}

func (s *FavoriteService) deleteError(op, clientID, ref string, err error) error {
	// removed concurrently between the lookup and the delete
	if errors.Is(err, favorite.ErrNotFound) {
		return apperror.ErrFavoriteNotFound
	}
	s.logError(op, logrus.Fields{"client_id": clientID, "ref": ref}, err)
	return apperror.ErrFavoriteFailedToDelete.Wrap(err)
}

func (s *FavoriteService) logError(op string, fields logrus.Fields, err error) {
	if s.logger == nil {
		return
	}
	s.logger.WithFields(fields).WithField("operation", "favorite."+op).WithError(err).Error("favorite service failure")
}

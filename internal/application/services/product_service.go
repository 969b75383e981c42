package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/wishlist-api/internal/core/apperror"
	"github.com/avatarctic/wishlist-api/internal/core/domain/product"
	"github.com/avatarctic/wishlist-api/internal/core/ports"
)

// ProductService is a stateless pass-through to the external catalog.
type ProductService struct {
	catalog ports.ProductCatalog
	logger  *logrus.Logger
}

func NewProductService(catalog ports.ProductCatalog, logger *logrus.Logger) ports.ProductService {
	return &ProductService{catalog: catalog, logger: logger}
}

func (s *ProductService) Index(ctx context.Context, page int) (*product.Page, error) {
	if page < 1 {
		return nil, apperror.ErrInvalidPage
	}

	result, err := s.catalog.ListProducts(ctx, page)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return nil, apperror.ErrProductNotFoundAll
		}
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"page": page}).WithError(err).Error("failed to list catalog products")
		}
		return nil, apperror.ErrFailedToFetchProducts.Wrap(err)
	}
	if len(result.Products) == 0 {
		return nil, apperror.ErrProductNotFoundAll
	}
	return result, nil
}

func (s *ProductService) Show(ctx context.Context, id string) (*product.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, "/?#") {
		return nil, apperror.ErrInvalidProductID
	}

	result, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return nil, apperror.ErrProductNotFound
		}
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"product_id": id}).WithError(err).Error("failed to fetch catalog product")
		}
		return nil, apperror.ErrProductFailedToShow.Wrap(err)
	}
	return result, nil
}

package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/cahoico/storefront/internal/domain/catalog"
	"github.com/cahoico/storefront/internal/domain/shared"
)

// Service exposes catalog browsing to the presentation layer. The
// repository reports absence as (nil, nil); here absence becomes a
// NOT_FOUND domain error so handlers map it uniformly.
type Service struct {
	repo   catalog.Repository
	logger *zap.Logger
}

// NewService creates a catalog service
func NewService(repo catalog.Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.Named("catalog"),
	}
}

// Products lists the catalog
func (s *Service) Products(ctx context.Context) ([]catalog.Product, error) {
	return s.repo.Products(ctx)
}

// ProductBySlug fetches one product
func (s *Service) ProductBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	if slug == "" {
		return nil, shared.ErrInvalidInput
	}
	product, err := s.repo.ProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

// Collections lists the shop's collections
func (s *Service) Collections(ctx context.Context) ([]catalog.Collection, error) {
	return s.repo.Collections(ctx)
}

// CollectionBySlug fetches one collection with its variants
func (s *Service) CollectionBySlug(ctx context.Context, slug string) (*catalog.Collection, error) {
	if slug == "" {
		return nil, shared.ErrInvalidInput
	}
	collection, err := s.repo.CollectionBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, shared.ErrNotFound
	}
	return collection, nil
}

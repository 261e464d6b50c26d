package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mwd-interiors/quotedesk/internal/domain/catalog"
	"mwd-interiors/quotedesk/internal/domain/repository"
)

// Record is a catalog entry: stored by id and searchable.
type Record interface {
	repository.Entity
	Matches(term string) bool
}

type recordPtr[T any] interface {
	*T
	SetID(id int64)
}

// CatalogService is the create/read/update/delete/search surface shared by
// customers, products and salespeople.
type CatalogService[T Record, P recordPtr[T]] struct {
	kind   string
	repo   repository.Repository[T]
	logger *zap.Logger
}

func NewCatalogService[T Record, P recordPtr[T]](kind string, repo repository.Repository[T], logger *zap.Logger) *CatalogService[T, P] {
	return &CatalogService[T, P]{kind: kind, repo: repo, logger: logger}
}

func (s *CatalogService[T, P]) Create(ctx context.Context, v T) (T, error) {
	out, err := s.repo.Create(ctx, v)
	if err != nil {
		return out, fmt.Errorf("failed to create %s: %w", s.kind, err)
	}
	s.logger.Info(s.kind+" created", zap.Int64("id", out.GetID()))
	return out, nil
}

func (s *CatalogService[T, P]) Get(ctx context.Context, id int64) (T, error) {
	out, err := s.repo.Get(ctx, id)
	if err != nil {
		return out, fmt.Errorf("failed to get %s: %w", s.kind, err)
	}
	return out, nil
}

// Update replaces the record with the given id.
func (s *CatalogService[T, P]) Update(ctx context.Context, id int64, v T) (T, error) {
	P(&v).SetID(id)
	out, err := s.repo.Update(ctx, v)
	if err != nil {
		return out, fmt.Errorf("failed to update %s: %w", s.kind, err)
	}
	s.logger.Info(s.kind+" updated", zap.Int64("id", id))
	return out, nil
}

func (s *CatalogService[T, P]) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete %s: %w", s.kind, err)
	}
	s.logger.Info(s.kind+" deleted", zap.Int64("id", id))
	return nil
}

// Search lists every record matching term; an empty term lists all.
func (s *CatalogService[T, P]) Search(ctx context.Context, term string) ([]T, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.kind, err)
	}
	return catalog.Filter(all, term), nil
}

type (
	CustomerService    = CatalogService[catalog.Customer, *catalog.Customer]
	ProductService     = CatalogService[catalog.Product, *catalog.Product]
	SalespersonService = CatalogService[catalog.Salesperson, *catalog.Salesperson]
)

// SeedCatalog loads the demo customers, products and salespeople into
// any repository that is still empty.
func SeedCatalog(ctx context.Context, repos Repositories, logger *zap.Logger) error {
	if err := seed(ctx, repos.Customers, catalog.SeedCustomers()); err != nil {
		return fmt.Errorf("seed customers: %w", err)
	}
	if err := seed(ctx, repos.Products, catalog.SeedProducts()); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	if err := seed(ctx, repos.Salespeople, catalog.SeedSalespeople()); err != nil {
		return fmt.Errorf("seed salespeople: %w", err)
	}
	logger.Info("catalog seeded")
	return nil
}

func seed[T repository.Entity](ctx context.Context, repo repository.Repository[T], items []T) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, it := range items {
		if _, err := repo.Create(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

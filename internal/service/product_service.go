package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/talhaustundag/ecommerce-api/internal/domain"
	"github.com/talhaustundag/ecommerce-api/internal/repository"
)

type ProductService struct {
	productRepo  *repository.ProductRepository
	categoryRepo *repository.CategoryRepository
	logger       *zap.Logger
}

func NewProductService(productRepo *repository.ProductRepository, categoryRepo *repository.CategoryRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

func (s *ProductService) List(ctx context.Context, f domain.ProductFilter) (*domain.ProductPage, error) {
	return s.productRepo.List(ctx, f)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.productRepo.Get(ctx, id)
}

// Create stores a new product after checking the category exists.
func (s *ProductService) Create(ctx context.Context, p *domain.Product) error {
	if _, err := s.categoryRepo.Get(ctx, p.CategoryID); err != nil {
		return err
	}
	if err := s.productRepo.Create(ctx, p); err != nil {
		return err
	}
	s.logger.Info("Product created", zap.Int64("product_id", p.ID), zap.String("name", p.Name))
	return nil
}

func (s *ProductService) Update(ctx context.Context, p *domain.Product) error {
	if _, err := s.categoryRepo.Get(ctx, p.CategoryID); err != nil {
		return err
	}
	return s.productRepo.Update(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.Int64("product_id", id))
	return nil
}

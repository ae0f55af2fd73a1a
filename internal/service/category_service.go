package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/talhaustundag/ecommerce-api/internal/domain"
	"github.com/talhaustundag/ecommerce-api/internal/repository"
)

type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	logger       *zap.Logger
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	c := &domain.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("Category created", zap.Int64("category_id", c.ID), zap.String("name", name))
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, name string) (*domain.Category, error) {
	if err := s.categoryRepo.Update(ctx, id, name); err != nil {
		return nil, err
	}
	return s.categoryRepo.Get(ctx, id)
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.categoryRepo.Delete(ctx, id)
}

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/talhaustundag/ecommerce-api/internal/repository"
)

type AdminService struct {
	statsRepo *repository.StatsRepository
	logger    *zap.Logger
}

func NewAdminService(statsRepo *repository.StatsRepository, logger *zap.Logger) *AdminService {
	return &AdminService{statsRepo: statsRepo, logger: logger}
}

// Dashboard collects the store-wide overview numbers.
func (s *AdminService) Dashboard(ctx context.Context) (*repository.Dashboard, error) {
	return s.statsRepo.Dashboard(ctx)
}

package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/shipment-intake/internal/repository"
)

const healthTimeout = 2 * time.Second

type healthService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewHealthService creates a new health service
func NewHealthService(repos *repository.Repositories, logger *zap.Logger) *healthService {
	return &healthService{
		repos:  repos,
		logger: logger,
	}
}

func (s *healthService) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	if err := s.repos.Health.Ping(ctx); err != nil {
		s.logger.Warn("Health check failed", zap.Error(err))
		return err
	}
	return nil
}

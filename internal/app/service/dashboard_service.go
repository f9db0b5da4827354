package service

import (
	"context"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/internal/app/repository"
	"github.com/emra/admin-console/pkg/adminapi"
)

type DashboardService interface {
	Stats(ctx context.Context, sess *adminapi.Session) (*model.DashboardStats, error)
}

type dashboardService struct {
	repo repository.DashboardRepository
}

func NewDashboardService(repo repository.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

// Stats never returns a nil value on success; missing figures are zero
func (s *dashboardService) Stats(ctx context.Context, sess *adminapi.Session) (*model.DashboardStats, error) {
	stats, err := s.repo.Stats(ctx, sess)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &model.DashboardStats{}
	}
	return stats, nil
}

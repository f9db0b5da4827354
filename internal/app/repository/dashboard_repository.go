package repository

import (
	"context"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/pkg/adminapi"
)

type DashboardRepository interface {
	Stats(ctx context.Context, sess *adminapi.Session) (*model.DashboardStats, error)
}

type dashboardRepository struct {
	client *adminapi.Client
}

func NewDashboardRepository(client *adminapi.Client) DashboardRepository {
	return &dashboardRepository{client: client}
}

func (r *dashboardRepository) Stats(ctx context.Context, sess *adminapi.Session) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	if err := r.client.Get(ctx, sess, "/admin/dashboard", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

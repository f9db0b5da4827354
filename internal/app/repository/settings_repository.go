package repository

import (
	"context"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/pkg/adminapi"
)

type SettingsRepository interface {
	Get(ctx context.Context, sess *adminapi.Session) (model.Settings, error)
	Update(ctx context.Context, sess *adminapi.Session, settings model.Settings) (model.Settings, error)
}

type settingsRepository struct {
	client *adminapi.Client
}

func NewSettingsRepository(client *adminapi.Client) SettingsRepository {
	return &settingsRepository{client: client}
}

func (r *settingsRepository) Get(ctx context.Context, sess *adminapi.Session) (model.Settings, error) {
	settings := model.Settings{}
	if err := r.client.Get(ctx, sess, "/admin/settings", nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, sess *adminapi.Session, settings model.Settings) (model.Settings, error) {
	updated := model.Settings{}
	if err := r.client.Put(ctx, sess, "/admin/settings", settings, &updated); err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return settings, nil
	}
	return updated, nil
}

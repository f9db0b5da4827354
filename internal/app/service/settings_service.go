package service

import (
	"context"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/internal/app/repository"
	"github.com/emra/admin-console/pkg/adminapi"
)

type SettingsService interface {
	Get(ctx context.Context, sess *adminapi.Session) (model.Settings, error)
	Update(ctx context.Context, sess *adminapi.Session, settings model.Settings) (model.Settings, error)
}

type settingsService struct {
	repo  repository.SettingsRepository
	guard *SubmitGuard
}

func NewSettingsService(repo repository.SettingsRepository, guard *SubmitGuard) SettingsService {
	return &settingsService{repo: repo, guard: guard}
}

func (s *settingsService) Get(ctx context.Context, sess *adminapi.Session) (model.Settings, error) {
	return s.repo.Get(ctx, sess)
}

func (s *settingsService) Update(ctx context.Context, sess *adminapi.Session, settings model.Settings) (model.Settings, error) {
	release, err := s.guard.Acquire(submitKey(sess.ID(), "settings", "shop"))
	if err != nil {
		return nil, err
	}
	defer release()
	return s.repo.Update(ctx, sess, settings)
}

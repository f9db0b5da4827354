package service

import (
	"context"
	"errors"
	"strings"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/internal/app/repository"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/emra/admin-console/pkg/logger"
)

type AuthService interface {
	// Login exchanges credentials for a bearer token. Every rejection is ErrInvalidCredentials.
	Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error)
	Me(ctx context.Context, sess *adminapi.Session) (*model.Admin, error)
}

type authService struct {
	repo repository.AuthRepository
}

func NewAuthService(repo repository.AuthRepository) AuthService {
	return &authService{repo: repo}
}

func (s *authService) Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}

	logger.Info("Attempting admin login", map[string]interface{}{
		"username": creds.Username,
	})

	result, err := s.repo.Login(ctx, creds)
	if err != nil {
		var apiErr *adminapi.APIError
		if !errors.As(err, &apiErr) {
			logger.Error("Login request failed", err, map[string]interface{}{
				"username": creds.Username,
			})
		} else {
			logger.Warn("Login rejected", map[string]interface{}{
				"username":    creds.Username,
				"status_code": apiErr.StatusCode,
			})
		}
		return nil, ErrInvalidCredentials
	}
	if result.Token == "" {
		logger.Warn("Login response carried no token", map[string]interface{}{
			"username": creds.Username,
		})
		return nil, ErrInvalidCredentials
	}

	logger.Info("Admin logged in", map[string]interface{}{
		"username": creds.Username,
	})
	return result, nil
}

func (s *authService) Me(ctx context.Context, sess *adminapi.Session) (*model.Admin, error) {
	return s.repo.Me(ctx, sess)
}

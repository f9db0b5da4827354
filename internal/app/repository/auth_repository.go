package repository

import (
	"context"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/pkg/adminapi"
)

type AuthRepository interface {
	Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error)
	Me(ctx context.Context, sess *adminapi.Session) (*model.Admin, error)
}

type authRepository struct {
	client *adminapi.Client
}

func NewAuthRepository(client *adminapi.Client) AuthRepository {
	return &authRepository{client: client}
}

// Login is sent without a token
func (r *authRepository) Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error) {
	var result model.LoginResult
	if err := r.client.Post(ctx, adminapi.Anonymous(), "/admin/login", creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *authRepository) Me(ctx context.Context, sess *adminapi.Session) (*model.Admin, error) {
	var admin model.Admin
	if err := r.client.Get(ctx, sess, "/admin/me", nil, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

package repository

import (
	"context"
	"net/http"
	"testing"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRepository_Login(t *testing.T) {
	api, client, _ := setupRepositoryTest(t)
	repo := NewAuthRepository(client)

	api.handle("POST /api/admin/login", http.StatusOK, `{"data":{"token":"jwt-1","admin":{"id":"a1","username":"root"}}}`)

	result, err := repo.Login(context.Background(), model.Credentials{Username: "root", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", result.Token)
	assert.Equal(t, "root", result.Admin.Username)

	req := api.last()
	assert.Empty(t, req.Auth)
	assert.Equal(t, "root", req.Body["username"])
}

func TestAuthRepository_Me(t *testing.T) {
	api, client, sess := setupRepositoryTest(t)
	repo := NewAuthRepository(client)

	api.handle("GET /api/admin/me", http.StatusOK, `{"id":"a1","username":"root"}`)

	admin, err := repo.Me(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "a1", admin.ID)
}

func TestDashboardRepository_StatsDefaults(t *testing.T) {
	api, client, sess := setupRepositoryTest(t)
	repo := NewDashboardRepository(client)

	api.handle("GET /api/admin/dashboard", http.StatusOK, `{"data":{"totalOrders":12}}`)

	stats, err := repo.Stats(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalOrders)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.Zero(t, stats.TotalUsers)
}

func TestSettingsRepository_Update(t *testing.T) {
	api, client, sess := setupRepositoryTest(t)
	repo := NewSettingsRepository(client)

	api.handle("PUT /api/admin/settings", http.StatusOK, `{"data":{"deliveryFee":2000,"shopName":"EMRA"}}`)
	api.handle("GET /api/admin/settings", http.StatusOK, `{"data":{"deliveryFee":1500,"shopName":"EMRA"}}`)

	settings, err := repo.Get(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "EMRA", settings["shopName"])

	updated, err := repo.Update(context.Background(), sess, model.Settings{"deliveryFee": 2000})
	require.NoError(t, err)
	assert.Equal(t, float64(2000), api.last().Body["deliveryFee"])
	assert.Equal(t, float64(2000), updated["deliveryFee"])
}

func TestPromoCodeRepository_Delete(t *testing.T) {
	api, client, sess := setupRepositoryTest(t)
	repo := NewPromoCodeRepository(client)

	api.handle("DELETE /api/admin/promo-codes/pc1", http.StatusNoContent, ``)
	require.NoError(t, repo.Delete(context.Background(), sess, "pc1"))
	assert.Equal(t, "/api/admin/promo-codes/pc1", api.last().Path)
}

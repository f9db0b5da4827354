package repository

import (
	"context"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/emra/admin-console/pkg/logger"
)

const bannersPath = "/admin/banners"

type BannerRepository interface {
	List(ctx context.Context, sess *adminapi.Session) ([]model.Banner, error)
	Create(ctx context.Context, sess *adminapi.Session, banner *model.Banner) (*model.Banner, error)
	Update(ctx context.Context, sess *adminapi.Session, id string, banner *model.Banner) (*model.Banner, error)
	// Patch sends only the set fields through the same PUT endpoint
	Patch(ctx context.Context, sess *adminapi.Session, id string, patch model.BannerPatch) error
	Delete(ctx context.Context, sess *adminapi.Session, id string) error
	AddProducts(ctx context.Context, sess *adminapi.Session, id string, productIDs []string) error
	RemoveProduct(ctx context.Context, sess *adminapi.Session, id, productID string) error
	ReorderProducts(ctx context.Context, sess *adminapi.Session, id string, productIDs []string) error
}

type bannerRepository struct {
	client *adminapi.Client
}

func NewBannerRepository(client *adminapi.Client) BannerRepository {
	return &bannerRepository{client: client}
}

func (r *bannerRepository) List(ctx context.Context, sess *adminapi.Session) ([]model.Banner, error) {
	return adminapi.List[model.Banner](ctx, r.client, sess, bannersPath, nil)
}

func (r *bannerRepository) Create(ctx context.Context, sess *adminapi.Session, banner *model.Banner) (*model.Banner, error) {
	var created model.Banner
	if err := r.client.Post(ctx, sess, bannersPath, banner, &created); err != nil {
		logger.Error("Failed to create banner", err, map[string]interface{}{
			"title": banner.Title,
		})
		return nil, err
	}
	return &created, nil
}

func (r *bannerRepository) Update(ctx context.Context, sess *adminapi.Session, id string, banner *model.Banner) (*model.Banner, error) {
	var updated model.Banner
	if err := r.client.Put(ctx, sess, resourcePath(bannersPath, id), banner, &updated); err != nil {
		logger.Error("Failed to update banner", err, map[string]interface{}{
			"banner_id": id,
		})
		return nil, err
	}
	return &updated, nil
}

func (r *bannerRepository) Patch(ctx context.Context, sess *adminapi.Session, id string, patch model.BannerPatch) error {
	return r.client.Put(ctx, sess, resourcePath(bannersPath, id), patch, nil)
}

func (r *bannerRepository) Delete(ctx context.Context, sess *adminapi.Session, id string) error {
	return r.client.Delete(ctx, sess, resourcePath(bannersPath, id))
}

func (r *bannerRepository) AddProducts(ctx context.Context, sess *adminapi.Session, id string, productIDs []string) error {
	return r.client.Post(ctx, sess, resourcePath(bannersPath, id, "products"), productIDsBody{ProductIDs: productIDs}, nil)
}

func (r *bannerRepository) RemoveProduct(ctx context.Context, sess *adminapi.Session, id, productID string) error {
	return r.client.Delete(ctx, sess, resourcePath(bannersPath, id, "products", productID))
}

// ReorderProducts replaces the association order with productIDs
func (r *bannerRepository) ReorderProducts(ctx context.Context, sess *adminapi.Session, id string, productIDs []string) error {
	return r.client.Put(ctx, sess, resourcePath(bannersPath, id, "products", "reorder"), productIDsBody{ProductIDs: productIDs}, nil)
}

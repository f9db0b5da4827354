package repository

import (
	"context"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/emra/admin-console/pkg/logger"
)

const categoriesPath = "/admin/categories"

type CategoryRepository interface {
	List(ctx context.Context, sess *adminapi.Session) ([]model.Category, error)
	Create(ctx context.Context, sess *adminapi.Session, category *model.Category) (*model.Category, error)
	Update(ctx context.Context, sess *adminapi.Session, id string, category *model.Category) (*model.Category, error)
	// Patch sends only the set fields through the same PUT endpoint
	Patch(ctx context.Context, sess *adminapi.Session, id string, patch model.CategoryPatch) error
	Delete(ctx context.Context, sess *adminapi.Session, id string) error
}

type categoryRepository struct {
	client *adminapi.Client
}

func NewCategoryRepository(client *adminapi.Client) CategoryRepository {
	return &categoryRepository{client: client}
}

func (r *categoryRepository) List(ctx context.Context, sess *adminapi.Session) ([]model.Category, error) {
	return adminapi.List[model.Category](ctx, r.client, sess, categoriesPath, nil)
}

func (r *categoryRepository) Create(ctx context.Context, sess *adminapi.Session, category *model.Category) (*model.Category, error) {
	created := *category
	if err := r.client.Post(ctx, sess, categoriesPath, category, &created); err != nil {
		logger.Error("Failed to create category", err, map[string]interface{}{
			"slug": category.Slug,
		})
		return nil, err
	}
	return &created, nil
}

func (r *categoryRepository) Update(ctx context.Context, sess *adminapi.Session, id string, category *model.Category) (*model.Category, error) {
	updated := *category
	if err := r.client.Put(ctx, sess, resourcePath(categoriesPath, id), category, &updated); err != nil {
		logger.Error("Failed to update category", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}
	return &updated, nil
}

func (r *categoryRepository) Patch(ctx context.Context, sess *adminapi.Session, id string, patch model.CategoryPatch) error {
	return r.client.Put(ctx, sess, resourcePath(categoriesPath, id), patch, nil)
}

func (r *categoryRepository) Delete(ctx context.Context, sess *adminapi.Session, id string) error {
	return r.client.Delete(ctx, sess, resourcePath(categoriesPath, id))
}

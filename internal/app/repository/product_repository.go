package repository

import (
	"context"
	"net/url"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/emra/admin-console/pkg/logger"
)

const productsPath = "/admin/products"

type ProductRepository interface {
	List(ctx context.Context, sess *adminapi.Session, query model.ProductQuery) ([]model.Product, error)
	Get(ctx context.Context, sess *adminapi.Session, id string) (*model.Product, error)
	Create(ctx context.Context, sess *adminapi.Session, product *model.Product) (*model.Product, error)
	Update(ctx context.Context, sess *adminapi.Session, id string, product *model.Product) (*model.Product, error)
	Delete(ctx context.Context, sess *adminapi.Session, id string) error
	UpdateStock(ctx context.Context, sess *adminapi.Session, id string, stock int) error
	Toggle(ctx context.Context, sess *adminapi.Session, id string) error
}

type productRepository struct {
	client *adminapi.Client
}

func NewProductRepository(client *adminapi.Client) ProductRepository {
	return &productRepository{client: client}
}

func (r *productRepository) List(ctx context.Context, sess *adminapi.Session, query model.ProductQuery) ([]model.Product, error) {
	q := url.Values{}
	if query.Search != "" {
		q.Set("search", query.Search)
	}
	if query.CategoryID != "" {
		q.Set("categoryId", query.CategoryID)
	}
	q = pageQuery(q, query.Page, query.Limit)

	products, err := adminapi.List[model.Product](ctx, r.client, sess, productsPath, q)
	if err != nil {
		return nil, err
	}

	logger.Debug("Products fetched", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) Get(ctx context.Context, sess *adminapi.Session, id string) (*model.Product, error) {
	var product model.Product
	if err := r.client.Get(ctx, sess, resourcePath(productsPath, id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, sess *adminapi.Session, product *model.Product) (*model.Product, error) {
	created := *product
	if err := r.client.Post(ctx, sess, productsPath, product, &created); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"sku": product.SKU,
		})
		return nil, err
	}
	return &created, nil
}

func (r *productRepository) Update(ctx context.Context, sess *adminapi.Session, id string, product *model.Product) (*model.Product, error) {
	updated := *product
	if err := r.client.Put(ctx, sess, resourcePath(productsPath, id), product, &updated); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &updated, nil
}

func (r *productRepository) Delete(ctx context.Context, sess *adminapi.Session, id string) error {
	return r.client.Delete(ctx, sess, resourcePath(productsPath, id))
}

func (r *productRepository) UpdateStock(ctx context.Context, sess *adminapi.Session, id string, stock int) error {
	body := map[string]int{"stock": stock}
	return r.client.Patch(ctx, sess, resourcePath(productsPath, id, "stock"), body, nil)
}

// Toggle flips isActive server side; the request has no body
func (r *productRepository) Toggle(ctx context.Context, sess *adminapi.Session, id string) error {
	return r.client.Patch(ctx, sess, resourcePath(productsPath, id, "toggle"), nil, nil)
}

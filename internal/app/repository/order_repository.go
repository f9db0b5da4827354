package repository

import (
	"context"
	"net/url"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/emra/admin-console/pkg/logger"
)

const ordersPath = "/admin/orders"

type OrderRepository interface {
	List(ctx context.Context, sess *adminapi.Session, query model.OrderQuery) ([]model.Order, error)
	Get(ctx context.Context, sess *adminapi.Session, id string) (*model.Order, error)
	UpdateStatus(ctx context.Context, sess *adminapi.Session, id string, status model.OrderStatus) error
}

type orderRepository struct {
	client *adminapi.Client
}

func NewOrderRepository(client *adminapi.Client) OrderRepository {
	return &orderRepository{client: client}
}

func (r *orderRepository) List(ctx context.Context, sess *adminapi.Session, query model.OrderQuery) ([]model.Order, error) {
	q := url.Values{}
	if query.Status != "" {
		q.Set("status", string(query.Status))
	}
	q = pageQuery(q, query.Page, query.Limit)
	return adminapi.List[model.Order](ctx, r.client, sess, ordersPath, q)
}

func (r *orderRepository) Get(ctx context.Context, sess *adminapi.Session, id string) (*model.Order, error) {
	var order model.Order
	if err := r.client.Get(ctx, sess, resourcePath(ordersPath, id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, sess *adminapi.Session, id string, status model.OrderStatus) error {
	logger.Debug("Updating order status", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})

	body := map[string]model.OrderStatus{"status": status}
	if err := r.client.Patch(ctx, sess, resourcePath(ordersPath, id, "status"), body, nil); err != nil {
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": id,
			"status":   status,
		})
		return err
	}
	return nil
}

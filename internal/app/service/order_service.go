package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/internal/app/repository"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/emra/admin-console/pkg/logger"
)

// OrderFilter narrows the loaded order list; zero value matches everything
type OrderFilter struct {
	Search string
	Status model.OrderStatus
}

type OrderCounters struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

type OrderService interface {
	List(ctx context.Context, sess *adminapi.Session, query model.OrderQuery) ([]model.Order, error)
	Get(ctx context.Context, sess *adminapi.Session, id string) (*model.Order, error)
	// Advance requests the single next status of the stored order and refetches the list.
	// current is the status the operator saw; a stale value is rejected.
	Advance(ctx context.Context, sess *adminapi.Session, orderID string, current model.OrderStatus, confirmed bool) ([]model.Order, error)
	// Cancel moves a non-terminal order to CANCELLED and refetches the list
	Cancel(ctx context.Context, sess *adminapi.Session, orderID string, current model.OrderStatus, confirmed bool) ([]model.Order, error)
}

type orderService struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderService{repo: repo}
}

func (s *orderService) List(ctx context.Context, sess *adminapi.Session, query model.OrderQuery) ([]model.Order, error) {
	return s.repo.List(ctx, sess, query)
}

func (s *orderService) Get(ctx context.Context, sess *adminapi.Session, id string) (*model.Order, error) {
	return s.repo.Get(ctx, sess, id)
}

func (s *orderService) Advance(ctx context.Context, sess *adminapi.Session, orderID string, current model.OrderStatus, confirmed bool) ([]model.Order, error) {
	if _, ok := current.Next(); !ok {
		return nil, ErrNoTransition
	}
	return s.transition(ctx, sess, orderID, current, false, confirmed)
}

func (s *orderService) Cancel(ctx context.Context, sess *adminapi.Session, orderID string, current model.OrderStatus, confirmed bool) ([]model.Order, error) {
	if !current.CanCancel() {
		return nil, ErrNoTransition
	}
	return s.transition(ctx, sess, orderID, current, true, confirmed)
}

// transition derives the target from the order as stored on the server. A status
// the operator saw that no longer matches is rejected, so no state is ever skipped.
func (s *orderService) transition(ctx context.Context, sess *adminapi.Session, orderID string, seen model.OrderStatus, cancel, confirmed bool) ([]model.Order, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}

	order, err := s.repo.Get(ctx, sess, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != seen {
		logger.Warn("Order status changed since it was loaded", map[string]interface{}{
			"order_id": orderID,
			"seen":     seen,
			"actual":   order.Status,
		})
		return nil, fmt.Errorf("%w: order %s is %s, not %s", ErrNoTransition, orderID, order.Status, seen)
	}

	to := model.OrderStatusCancelled
	if !cancel {
		next, ok := order.Status.Next()
		if !ok {
			return nil, ErrNoTransition
		}
		to = next
	} else if !order.Status.CanCancel() {
		return nil, ErrNoTransition
	}

	if err := s.repo.UpdateStatus(ctx, sess, orderID, to); err != nil {
		return nil, err
	}

	logger.Info("Order status changed", map[string]interface{}{
		"order_id": orderID,
		"from":     order.Status,
		"to":       to,
	})
	return s.repo.List(ctx, sess, model.OrderQuery{})
}

// FilterOrders matches order number and customer name case-insensitively,
// the phone as typed, and the status exactly
func FilterOrders(orders []model.Order, filter OrderFilter) []model.Order {
	q := strings.ToLower(filter.Search)
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(string(o.OrderNumber)), q) &&
			!strings.Contains(strings.ToLower(o.CustomerName), q) &&
			!strings.Contains(o.CustomerPhone, filter.Search) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func CountOrders(orders []model.Order) OrderCounters {
	c := OrderCounters{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case model.OrderStatusPending:
			c.Pending++
		case model.OrderStatusCompleted:
			c.Completed++
		}
	}
	return c
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/emra/admin-console/pkg/logger"
)

// Positioned is a sibling in a manually ordered list
type Positioned interface {
	GetID() string
	GetPosition() int
}

// PositionStore is the remote side of a reorderable collection
type PositionStore[T Positioned] interface {
	SetPosition(ctx context.Context, sess *adminapi.Session, id string, position int) error
	List(ctx context.Context, sess *adminapi.Session) ([]T, error)
}

// Reorderer swaps an item with its neighbour using two partial updates and a refetch.
// The two writes are not atomic: when the second fails the list stays half swapped
// and the refetched list shows exactly that.
type Reorderer[T Positioned] struct {
	store PositionStore[T]
	kind  string
}

func NewReorderer[T Positioned](kind string, store PositionStore[T]) *Reorderer[T] {
	return &Reorderer[T]{store: store, kind: kind}
}

// MoveUp swaps list[index] with list[index-1]; index 0 is a no-op
func (r *Reorderer[T]) MoveUp(ctx context.Context, sess *adminapi.Session, list []T, index int, confirmed bool) ([]T, error) {
	if index < 0 || index >= len(list) {
		return list, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(list))
	}
	if index == 0 {
		return list, nil
	}
	return r.swap(ctx, sess, list, index, index-1, confirmed)
}

// MoveDown swaps list[index] with list[index+1]; the last index is a no-op
func (r *Reorderer[T]) MoveDown(ctx context.Context, sess *adminapi.Session, list []T, index int, confirmed bool) ([]T, error) {
	if index < 0 || index >= len(list) {
		return list, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(list))
	}
	if index == len(list)-1 {
		return list, nil
	}
	return r.swap(ctx, sess, list, index, index+1, confirmed)
}

func (r *Reorderer[T]) swap(ctx context.Context, sess *adminapi.Session, list []T, index, neighbour int, confirmed bool) ([]T, error) {
	if !confirmed {
		return list, ErrConfirmationRequired
	}

	item, other := list[index], list[neighbour]
	itemPosition, otherPosition := item.GetPosition(), other.GetPosition()

	logger.Info("Swapping positions", map[string]interface{}{
		"kind":       r.kind,
		"item_id":    item.GetID(),
		"neighbour":  other.GetID(),
		"from":       itemPosition,
		"to":         otherPosition,
		"session_id": sess.ID(),
	})

	if err := r.store.SetPosition(ctx, sess, item.GetID(), otherPosition); err != nil {
		logger.Error("First position update failed", err, map[string]interface{}{
			"kind":    r.kind,
			"item_id": item.GetID(),
		})
		return list, err
	}

	secondErr := r.store.SetPosition(ctx, sess, other.GetID(), itemPosition)
	if secondErr != nil {
		logger.Error("Second position update failed, list is partially swapped", secondErr, map[string]interface{}{
			"kind":    r.kind,
			"item_id": other.GetID(),
		})
	}

	refreshed, err := r.store.List(ctx, sess)
	if err != nil {
		return list, errors.Join(secondErr, err)
	}
	return refreshed, secondErr
}

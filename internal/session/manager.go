package session

import (
	"context"
	"errors"
	"time"

	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/emra/admin-console/pkg/logger"
	"github.com/emra/admin-console/pkg/util"
	"github.com/google/uuid"
)

// Manager creates and resolves console sessions around a Store
type Manager struct {
	store     Store
	maxAge    time.Duration
	now       func() time.Time
	onDestroy []func(id string)
}

func NewManager(store Store, maxAge time.Duration) *Manager {
	return &Manager{store: store, maxAge: maxAge, now: time.Now}
}

// OnDestroy registers a callback run after a session is removed, for any reason
func (m *Manager) OnDestroy(fn func(id string)) {
	m.onDestroy = append(m.onDestroy, fn)
}

// Create stores token under a new session id. The lifetime follows the token's exp
// claim capped by the configured max age.
func (m *Manager) Create(ctx context.Context, token string) (string, time.Duration, error) {
	ttl, err := util.SessionTTL(token, m.maxAge, m.now())
	if err != nil {
		return "", 0, err
	}

	id := uuid.NewString()
	if err := m.store.Save(ctx, id, token, ttl); err != nil {
		logger.Error("Failed to store session", err, map[string]interface{}{
			"session_id": id,
		})
		return "", 0, err
	}

	logger.Debug("Session created", map[string]interface{}{
		"session_id": id,
		"ttl":        ttl.String(),
	})
	return id, ttl, nil
}

// Resolve returns the API session for a cookie value
func (m *Manager) Resolve(ctx context.Context, id string) (*adminapi.Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	token, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNotFound
	}
	return adminapi.NewSession(id, token), nil
}

func (m *Manager) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	for _, fn := range m.onDestroy {
		fn(id)
	}
	return nil
}

// HandleUnauthorized is the Resource Client's 401 hook: the session is gone for
// good, so it is removed from the store, not just from the request.
func (m *Manager) HandleUnauthorized(ctx context.Context, sess *adminapi.Session) {
	if sess.ID() == "" {
		return
	}
	if err := m.Destroy(context.WithoutCancel(ctx), sess.ID()); err != nil {
		logger.Error("Failed to drop rejected session", err, map[string]interface{}{
			"session_id": sess.ID(),
		})
	}
}

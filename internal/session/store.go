package session

import (
	"context"
	"errors"
	"time"
)

// TokenKey is the well-known name the bearer token is stored under
const TokenKey = "adminToken"

var ErrNotFound = errors.New("session not found")

// Store keeps the bearer token of each console session
type Store interface {
	Save(ctx context.Context, id, token string, ttl time.Duration) error
	// Load returns ErrNotFound for unknown or expired sessions
	Load(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

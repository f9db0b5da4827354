package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Save(ctx, "s1", "tok", time.Hour))

	token, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "short", "a", time.Minute))
	require.NoError(t, store.Save(ctx, "long", "b", time.Hour))

	now = now.Add(2 * time.Minute)

	_, err := store.Load(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)

	token, err := store.Load(ctx, "long")
	require.NoError(t, err)
	assert.Equal(t, "b", token)

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 0, store.Sweep())
	assert.Len(t, store.entries, 1)
}

func TestMemoryStore_UnknownSession(t *testing.T) {
	_, err := NewMemoryStore().Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

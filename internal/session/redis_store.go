package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCommands is the subset of the go-redis client the store uses
type redisCommands interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore shares sessions between console instances; Redis expires them
type RedisStore struct {
	client redisCommands
}

func NewRedisStore(client redisCommands) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(id string) string {
	return TokenKey + ":" + id
}

func (s *RedisStore) Save(ctx context.Context, id, token string, ttl time.Duration) error {
	return s.client.Set(ctx, redisKey(id), token, ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, id string) (string, error) {
	token, err := s.client.Get(ctx, redisKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisKey(id)).Err()
}

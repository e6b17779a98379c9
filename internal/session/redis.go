package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	errx "github.com/Cheertaboi/storefront-service/internal/core/error"
	logx "github.com/Cheertaboi/storefront-service/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) key(sessionID, key string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, key)
}

func (s *RedisStore) Put(ctx context.Context, sessionID, key, value string) error {
	k := s.key(sessionID, key)
	if err := s.rdb.Set(ctx, k, value, s.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", k).Msg("failed to write session value")
		return errx.WrapRedis(err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	k := s.key(sessionID, key)
	v, err := s.rdb.Get(ctx, k).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		logx.Error().Err(err).Str("key", k).Msg("failed to read session value")
		return "", errx.WrapRedis(err)
	}
	return v, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID, key string) error {
	k := s.key(sessionID, key)
	if err := s.rdb.Del(ctx, k).Err(); err != nil {
		logx.Error().Err(err).Str("key", k).Msg("failed to delete session value")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)

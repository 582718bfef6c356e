package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "pretest:session:"

// RedisStore хранилище сессий в Redis: hash на сессию, TTL продлевается при каждой записи и Touch
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore создает хранилище сессий поверх Redis
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

// Get возвращает значение ключа сессии
func (s *RedisStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	value, err := s.client.HGet(ctx, redisKey(sessionID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: Get: %v", ErrRedis, err)
	}
	return value, nil
}

// Set сохраняет значение ключа сессии и продлевает TTL
func (s *RedisStore) Set(ctx context.Context, sessionID, key, value string) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, redisKey(sessionID), key, value)
	pipe.Expire(ctx, redisKey(sessionID), s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrRedis, err)
	}
	return nil
}

// Clear удаляет перечисленные ключи; без ключей удаляет сессию целиком
func (s *RedisStore) Clear(ctx context.Context, sessionID string, keys ...string) error {
	var err error
	if len(keys) == 0 {
		err = s.client.Del(ctx, redisKey(sessionID)).Err()
	} else {
		err = s.client.HDel(ctx, redisKey(sessionID), keys...).Err()
	}

	if err != nil {
		return fmt.Errorf("%w: Clear: %v", ErrRedis, err)
	}
	return nil
}

// Touch продлевает TTL сессии; at не используется, отсчёт ведёт сам Redis
func (s *RedisStore) Touch(ctx context.Context, sessionID string, _ time.Time) error {
	if err := s.client.Expire(ctx, redisKey(sessionID), s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Touch: %v", ErrRedis, err)
	}
	return nil
}

// DeleteExpired ничего не делает: просроченные сессии удаляет сам Redis по TTL
func (s *RedisStore) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

// Ping проверяет соединение с Redis
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: Ping: %v", ErrRedis, err)
	}
	return nil
}

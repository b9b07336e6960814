package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis-backed repository
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration // zero keeps settings forever
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRepository connects to Redis and verifies the connection
func NewRedisRepository(ctx context.Context, cfg RedisConfig) (Repository, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return newSettings(&redisStore{client: client, ttl: cfg.TTL}), nil
}

func (r *redisStore) get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return val, err
}

func (r *redisStore) set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

func (r *redisStore) close() error {
	return r.client.Close()
}

// Package tokenstore keeps revoked session token ids in Redis.
package tokenstore

import (
	"context"
	"fmt"
	"time"

	"job-board-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "jobboard:revoked:"

// RedisDenylist stores revoked token ids until they expire
type RedisDenylist struct {
	client *redis.Client
}

// NewRedis creates a Redis client for the denylist
func NewRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})
}

// NewRedisDenylist creates a denylist on top of client
func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client}
}

// Revoke denies tokenID for ttl
func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := d.client.Set(ctx, keyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store revoked token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID was revoked and has not expired yet
func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return n > 0, nil
}

// Ping tests the Redis connection
func (d *RedisDenylist) Ping(ctx context.Context) error {
	if err := d.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (d *RedisDenylist) Close() error {
	return d.client.Close()
}

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/frituurapp/backend/internal/domain/possync"
	"github.com/frituurapp/backend/internal/infrastructure/config"
)

// RedisSyncLock implements SyncLock using Redis. Suitable for distributed
// deployments where multiple instances may trigger syncs for the same shop.
type RedisSyncLock struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisSyncLock creates a new Redis-based sync lock
func NewRedisSyncLock(cfg *config.RedisConfig) (*RedisSyncLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSyncLock{
		client:    client,
		keyPrefix: "possync:lock:",
	}, nil
}

// NewRedisSyncLockWithClient creates a lock with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisSyncLockWithClient(client *redis.Client, keyPrefix string) *RedisSyncLock {
	if keyPrefix == "" {
		keyPrefix = "possync:lock:"
	}
	return &RedisSyncLock{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// TryLock attempts to acquire the shop's sync lock without blocking.
// Uses SETNX with TTL in a single atomic operation so a crashed run cannot
// hold the lock forever.
func (l *RedisSyncLock) TryLock(ctx context.Context, shopID uuid.UUID, ttl time.Duration) (bool, error) {
	key := l.keyPrefix + shopID.String()

	acquired, err := l.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	return acquired, nil
}

// Unlock releases the shop's sync lock
func (l *RedisSyncLock) Unlock(ctx context.Context, shopID uuid.UUID) error {
	key := l.keyPrefix + shopID.String()

	if err := l.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release sync lock: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (l *RedisSyncLock) Close() error {
	return l.client.Close()
}

// Ensure RedisSyncLock implements SyncLock
var _ possync.SyncLock = (*RedisSyncLock)(nil)

// Package lockstore guards coupon redemption with short-lived
// key-value entries. A lock exists only while its key is present; the
// TTL is the sole recovery path for locks whose holder never redeemed.
package lockstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedemptionKey builds the lock key for a coupon code. The namespace
// is owned exclusively by the coupon lifecycle engine.
func RedemptionKey(code string) string {
	return fmt.Sprintf("coupon:%s:lock", code)
}

// LockStore provides expiring redemption locks.
type LockStore interface {
	// Acquire writes the key with the given TTL only when it is
	// absent. Returns false when another holder already has the lock.
	Acquire(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	// Get returns the stored marker value and whether the lock exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Release(ctx context.Context, key string) error
}

type redisLockStore struct {
	client *redis.Client
}

// NewRedisLockStore wraps a go-redis client as a LockStore.
func NewRedisLockStore(client *redis.Client) LockStore {
	return &redisLockStore{client: client}
}

func (s *redisLockStore) Acquire(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	// SET NX EX collapses check-then-set into one atomic call.
	return s.client.SetNX(ctx, key, value, ttl).Result()
}

func (s *redisLockStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *redisLockStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

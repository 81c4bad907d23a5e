package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// SlotStore implements repository.SlotStore on a single Redis key.
type SlotStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewSlotStore creates a Redis-backed slot. A zero ttl stores the key without expiry.
func NewSlotStore(client *redis.Client, key string, ttl time.Duration) *SlotStore {
	return &SlotStore{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Get reads the slot from Redis.
func (s *SlotStore) Get(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("cart slot", s.key)
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return data, nil
}

// Save writes the slot, refreshing the TTL.
func (s *SlotStore) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Delete removes the slot key.
func (s *SlotStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", s.key, err)
	}
	return nil
}

package redis

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/robertarktes/visa-appointments/internal/handoff"
)

// HandoffStore keeps serialized bookings across the payment redirect.
// Entries expire after ttl so an abandoned payment leaves nothing behind.
type HandoffStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewHandoffStore(client *redis.Client, ttl time.Duration) *HandoffStore {
	return &HandoffStore{client: client, ttl: ttl}
}

func handoffKey(key string) string {
	return "handoff:" + key
}

func (s *HandoffStore) Put(ctx context.Context, key string, data []byte) error {
	return s.client.Set(ctx, handoffKey(key), data, s.ttl).Err()
}

// Take reads and deletes the entry with a single GETDEL.
func (s *HandoffStore) Take(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.GetDel(ctx, handoffKey(key)).Bytes()
	if err == redis.Nil {
		return nil, errors.Wrapf(handoff.ErrNotFound, "%s", key)
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

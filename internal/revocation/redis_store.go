package revocation

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "jwt:revoked"

// ErrRedisUnavailable wraps failures talking to redis
var ErrRedisUnavailable = errors.New("revocation redis unavailable")

// redisStore implements Store on redis. Each revoked ID is a key whose TTL
// is the remaining token lifetime, so redis expires entries by itself.
type redisStore struct {
	redis  redis.UniversalClient
	prefix string
	now    func() time.Time
	closed atomic.Bool
}

// NewRedisStore creates a store on client. Keys are namespaced under prefix,
// or "jwt:revoked" when prefix is empty. Close does not close client.
func NewRedisStore(client redis.UniversalClient, prefix string) Store {
	if prefix == "" {
		prefix = redisKeyPrefix
	}
	return &redisStore{redis: client, prefix: prefix, now: time.Now}
}

func (s *redisStore) key(tokenID string) string {
	return s.prefix + ":" + tokenID
}

func (s *redisStore) Add(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}

	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	// redis rejects sub-millisecond expirations
	if ttl < time.Millisecond {
		ttl = time.Millisecond
	}

	if err := s.redis.Set(ctx, s.key(tokenID), expiresAt.Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (s *redisStore) Contains(ctx context.Context, tokenID string) (bool, error) {
	if s.closed.Load() {
		return false, ErrStoreClosed
	}

	n, err := s.redis.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return n > 0, nil
}

func (s *redisStore) Remove(ctx context.Context, tokenID string) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}

	if err := s.redis.Del(ctx, s.key(tokenID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Cleanup is a no-op; redis expires keys itself
func (s *redisStore) Cleanup(_ context.Context) (int, error) {
	if s.closed.Load() {
		return 0, ErrStoreClosed
	}
	return 0, nil
}

func (s *redisStore) Size(ctx context.Context) (int, error) {
	if s.closed.Load() {
		return 0, ErrStoreClosed
	}

	count := 0
	iter := s.redis.Scan(ctx, 0, s.prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return count, nil
}

func (s *redisStore) Close() error {
	s.closed.Store(true)
	return nil
}

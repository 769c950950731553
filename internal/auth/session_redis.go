package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisKeyPrefix = "catalog:session:"
	defaultRedisTimeout   = 3 * time.Second
)

// RedisSessionStore keeps sessions in Redis so several server processes can
// share them. Keys carry no TTL.
type RedisSessionStore struct {
	client   *redis.Client
	prefix   string
	timeout  time.Duration
	newToken func() (string, error)
}

// NewRedisSessionStore builds a Redis-backed session store.
func NewRedisSessionStore(addr, password string) *RedisSessionStore {
	return NewRedisSessionStoreWithClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	}))
}

// NewRedisSessionStoreWithClient wraps an existing client.
func NewRedisSessionStoreWithClient(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{
		client:   client,
		prefix:   defaultRedisKeyPrefix,
		timeout:  defaultRedisTimeout,
		newToken: NewToken,
	}
}

func (s *RedisSessionStore) key(token string) string {
	return s.prefix + token
}

// Ping checks that Redis is reachable.
func (s *RedisSessionStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

// Create implements SessionStore. SETNX keeps two processes from binding the
// same token.
func (s *RedisSessionStore) Create(ctx context.Context, identity string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	for range maxTokenAttempts {
		token, err := s.newToken()
		if err != nil {
			return "", err
		}

		stored, err := s.client.SetNX(ctx, s.key(token), identity, 0).Result()
		if err != nil {
			return "", err
		}
		if stored {
			return token, nil
		}
	}
	return "", ErrTokenCollision
}

// Lookup implements SessionStore.
func (s *RedisSessionStore) Lookup(ctx context.Context, token string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	identity, err := s.client.Get(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return identity, true, nil
}

// Revoke implements SessionStore.
func (s *RedisSessionStore) Revoke(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

// Seed implements SessionStore.
func (s *RedisSessionStore) Seed(ctx context.Context, token, identity string) error {
	if token == "" {
		return errors.New("seed token cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Set(ctx, s.key(token), identity, 0).Err()
}

// Close releases the Redis connection pool.
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}

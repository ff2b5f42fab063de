package credstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pakkurthi/jobquest-client/internal/domain"
)

const (
	tokenKey    = "jobquest:token"
	identityKey = "jobquest:identity"
)

// RedisStore keeps credentials in Redis under fixed keys, for shared or
// headless client deployments. A zero TTL means entries never expire.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a Redis-backed credential store from a URL
// (e.g. "redis://localhost:6379").
func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return &RedisStore{rdb: redis.NewClient(opts), ttl: ttl}, nil
}

// Ping verifies the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Load returns the stored credentials, or (nil, nil) when no token is stored.
func (s *RedisStore) Load(ctx context.Context) (*domain.Credentials, error) {
	token, err := s.rdb.Get(ctx, tokenKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	creds := domain.Credentials{Token: token}

	data, err := s.rdb.Get(ctx, identityKey).Bytes()
	switch {
	case err == redis.Nil:
		// token without snapshot is fine; identity is re-fetched on resolve
	case err != nil:
		return nil, fmt.Errorf("failed to load identity snapshot: %w", err)
	default:
		var identity domain.Identity
		if err := json.Unmarshal(data, &identity); err != nil {
			return nil, fmt.Errorf("failed to parse identity snapshot: %w", err)
		}
		creds.Identity = &identity
	}

	return &creds, nil
}

// Save stores both entries in one pipeline.
func (s *RedisStore) Save(ctx context.Context, creds domain.Credentials) error {
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, tokenKey, creds.Token, s.ttl)
	if creds.Identity != nil {
		data, err := json.Marshal(creds.Identity)
		if err != nil {
			return fmt.Errorf("failed to encode identity snapshot: %w", err)
		}
		pipe.Set(ctx, identityKey, data, s.ttl)
	} else {
		pipe.Del(ctx, identityKey)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

// Clear removes both entries.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, tokenKey, identityKey).Err(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/haithamsoil/nasgh/internal/domain"
)

// RedisRangeStore implements RangeStore over Redis, for deployments
// where several backend instances share one target cache. Semantics
// match the SQLite store: upsert, last write wins.
type RedisRangeStore struct {
	client *redis.Client
}

// NewRedisRangeStore connects to the Redis instance at url
// (redis://host:port/db) and verifies the connection.
func NewRedisRangeStore(ctx context.Context, url string) (*RedisRangeStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return &RedisRangeStore{client: client}, nil
}

func (s *RedisRangeStore) key(k domain.TargetKey) string {
	return fmt.Sprintf("nasgh:targets:%s:%s", k.PlantKey, k.Stage)
}

func (s *RedisRangeStore) Get(ctx context.Context, key domain.TargetKey) (domain.RangeRecord, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("targets for %s/%s: %w", key.PlantKey, key.Stage, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading targets from redis: %w", err)
	}

	var rec domain.RangeRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("decoding stored targets: %w", err)
	}
	return rec, nil
}

func (s *RedisRangeStore) Put(ctx context.Context, key domain.TargetKey, rec domain.RangeRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding targets: %w", err)
	}
	// No TTL: generated ranges stay valid until regenerated.
	if err := s.client.Set(ctx, s.key(key), string(raw), 0).Err(); err != nil {
		return fmt.Errorf("writing targets to redis: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisRangeStore) Close() error { return s.client.Close() }

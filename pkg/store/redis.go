package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/A5TEX/HSLU-Module-Master/pkg/student"
)

// RedisStore keeps the student record in a Redis instance, which gives the
// record the same synced-across-machines behavior the browser extension got
// from sync storage.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed store from a redis:// URL.
func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisStore) SaveStudent(ctx context.Context, rec *student.Record) error {
	data, err := encodeStudent(rec)
	if err != nil {
		return fmt.Errorf("failed to serialize student record: %w", err)
	}

	if err := s.client.Set(ctx, studentKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store student record: %w", err)
	}
	return nil
}

func (s *RedisStore) LoadStudent(ctx context.Context) (*student.Record, error) {
	data, err := s.client.Get(ctx, studentKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load student record: %w", err)
	}

	rec, err := decodeStudent(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode student record: %w", err)
	}
	return rec, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

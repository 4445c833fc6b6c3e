package snapshot

import (
	"context"
	"fmt"
	"time"

	"radar/api/internal/assessment"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on a single Redis key. The payload is the
// same portable JSON form used for file export, so loads pass through the
// same shape validation.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed snapshot store.
func NewRedisStore(redisURL, key string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{client: client, key: key}, nil
}

// NewRedisStoreWithClient creates a store from an existing Redis client.
func NewRedisStoreWithClient(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// Save writes the document to the slot. Snapshots do not expire.
func (s *RedisStore) Save(ctx context.Context, doc assessment.Document) error {
	data, err := assessment.EncodeFile(doc)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load reads and validates the slot. An absent slot yields ErrNoSnapshot;
// a present but invalid payload surfaces the codec's error.
func (s *RedisStore) Load(ctx context.Context) (assessment.Document, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return assessment.Document{}, ErrNoSnapshot
	}
	if err != nil {
		return assessment.Document{}, fmt.Errorf("load snapshot: %w", err)
	}
	return assessment.DecodeFile(data)
}

// Clear deletes the slot.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

// Ping checks if Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

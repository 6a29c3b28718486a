package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
)

// RedisRepository stores the snapshot blob under a single Redis key.
type RedisRepository struct {
	client *redis.Client
	key    string
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{
		client: client,
		key:    SnapshotKey,
	}
}

func (r *RedisRepository) Load(ctx context.Context) (*models.Store, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot from redis: %w", err)
	}
	return decodeStore(data)
}

func (r *RedisRepository) Save(ctx context.Context, store *models.Store) error {
	data, err := encodeStore(store)
	if err != nil {
		return err
	}

	// No TTL: the snapshot is the system of record, not a cache entry.
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot to redis: %w", err)
	}
	return nil
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

package grants

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Repository persists grant pools. Each pool is stored whole, as a JSON
// array under a fixed key, mirroring the layout earlier clients wrote.
type Repository interface {
	List(ctx context.Context, kind Kind) ([]Grant, error)
	Save(ctx context.Context, kind Kind, grants []Grant) error
}

// RedisRepository implements Repository on Redis.
type RedisRepository struct {
	client *redis.Client
}

// NewRepository constructs a Redis-backed repository.
func NewRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func storageKey(kind Kind) string {
	if kind == KindAdmin {
		return "adminIds"
	}
	return "employerIds"
}

// List returns every grant in the pool. A missing key reads as an empty
// pool; a corrupt payload is reported, never silently dropped.
func (r *RedisRepository) List(ctx context.Context, kind Kind) ([]Grant, error) {
	payload, err := r.client.Get(ctx, storageKey(kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("grants: load %s: %w", storageKey(kind), err)
	}
	var out []Grant
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("grants: decode %s: %w", storageKey(kind), err)
	}
	return out, nil
}

// Save replaces the pool wholesale.
func (r *RedisRepository) Save(ctx context.Context, kind Kind, grants []Grant) error {
	if grants == nil {
		grants = []Grant{}
	}
	data, err := json.Marshal(grants)
	if err != nil {
		return fmt.Errorf("grants: encode %s: %w", storageKey(kind), err)
	}
	if err := r.client.Set(ctx, storageKey(kind), data, 0).Err(); err != nil {
		return fmt.Errorf("grants: save %s: %w", storageKey(kind), err)
	}
	return nil
}

var _ Repository = (*RedisRepository)(nil)

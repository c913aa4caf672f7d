package dedup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const uploadedKeyPrefix = "uploaded:"

// Redis is a Store backed by a Redis instance, letting the uploaded-email set
// survive restarts and be shared between replicas.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Store on top of the given Redis client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// redisKey hashes the canonical email so arbitrary address bytes never end up
// in key names.
func redisKey(email string) string {
	sum := sha256.Sum256([]byte(key(email)))

	return uploadedKeyPrefix + hex.EncodeToString(sum[:])
}

// Seen reports whether the email has already been marked.
func (r *Redis) Seen(ctx context.Context, email string) (bool, error) {
	val, err := r.client.Exists(ctx, redisKey(email)).Result()
	if err != nil {
		return false, fmt.Errorf("could not check uploaded set: %w", err)
	}

	return val == 1, nil
}

// Mark records the email as uploaded. Keys never expire; the uploaded set
// only grows.
func (r *Redis) Mark(ctx context.Context, email string) error {
	if err := r.client.Set(ctx, redisKey(email), "1", 0).Err(); err != nil {
		return fmt.Errorf("could not mark email uploaded: %w", err)
	}

	return nil
}

// Ensure Redis conforms to the Store interface at compile time.
var _ Store = (*Redis)(nil)

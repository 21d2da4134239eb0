package fallback

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/maktabat-alamal/storefront/internal/models"
	"github.com/maktabat-alamal/storefront/pkg/logger"
)

// RedisStore implements Store using Redis. The document is stored as JSON
// under a single key with no TTL; it is only ever replaced, never expired.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed fallback store. Key may be empty.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = "storefront:fallback"
	}
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Get(ctx context.Context) (*models.Document, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var doc models.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		// corrupt copy is useless; drop it and report "nothing stored"
		logger.Warnf("fallback: discarding corrupt copy under %s: %v", r.key, err)
		_ = r.client.Del(ctx, r.key).Err()
		return nil, nil
	}
	return &doc, nil
}

func (r *RedisStore) Put(ctx context.Context, doc *models.Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, b, 0).Err()
}

package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shopsphere/storefront/models"
)

// RedisStorage keeps the session in Redis for deployments where several
// storefront processes share one signed-in session (a kiosk pool, a
// server-rendered frontend). Same two entries as FileStorage, namespaced
// by key prefix.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

func NewRedisStorage(client *redis.Client, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = "storefront:session"
	}

	return &RedisStorage{client: client, prefix: prefix}
}

func (r *RedisStorage) key(name string) string {
	return r.prefix + ":" + name
}

func (r *RedisStorage) Load(ctx context.Context) (*models.Identity, error) {

	data, err := r.client.Get(ctx, r.key(IdentityKey)).Bytes()
	if err != nil {

		if err == redis.Nil {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}

	var identity models.Identity

	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored identity: %w", err)
	}

	token, err := r.client.Get(ctx, r.key(TokenKey)).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get token from redis: %w", err)
	}

	if token != "" {
		identity.Token = token
	}

	return &identity, nil
}

func (r *RedisStorage) Save(ctx context.Context, identity *models.Identity) error {

	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}

	if err := r.client.Set(ctx, r.key(IdentityKey), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set session in redis: %w", err)
	}

	if err := r.client.Set(ctx, r.key(TokenKey), identity.Token, 0).Err(); err != nil {
		return fmt.Errorf("failed to set token in redis: %w", err)
	}

	return nil
}

func (r *RedisStorage) Clear(ctx context.Context) error {

	if err := r.client.Del(ctx, r.key(IdentityKey), r.key(TokenKey)).Err(); err != nil {
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}

	return nil
}

// Copyright (c) 2026 Motorpool. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/motorpoolhq/motorpool/internal/platform/apperr"
	"github.com/motorpoolhq/motorpool/internal/platform/constants"
)

// RedisSessionStore implements SessionStore using Redis.
//
// Keys carry a TTL so abandoned sessions expire on their own; no cleanup
// worker is needed.
type RedisSessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new Redis-backed SessionStore.
func NewSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

/*
Set binds a token fingerprint to a userID with a TTL.

Parameters:
  - ctx: context.Context
  - tokenHash: string (the SHA-256 fingerprint, never the raw token)
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (store *RedisSessionStore) Set(ctx context.Context, tokenHash string, userID string, ttl time.Duration) error {

	key := constants.RedisPrefixSession + tokenHash

	if err := store.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the userID bound to a token fingerprint.

Description: Returns apperr.NotFound if the session is absent or expired.

Parameters:
  - ctx: context.Context
  - tokenHash: string

Returns:
  - string: Bound UserID
  - error: apperr.NotFound or connectivity errors
*/
func (store *RedisSessionStore) Get(ctx context.Context, tokenHash string) (string, error) {

	key := constants.RedisPrefixSession + tokenHash

	userID, err := store.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Session")
		}
		return "", fmt.Errorf("redis_session_get_failed: %w", err)
	}

	return userID, nil
}

/*
Delete removes a session binding from Redis.

Description: Deleting an absent key is a no-op, keeping logout idempotent.

Parameters:
  - ctx: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (store *RedisSessionStore) Delete(ctx context.Context, tokenHash string) error {

	key := constants.RedisPrefixSession + tokenHash

	if err := store.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	return nil
}

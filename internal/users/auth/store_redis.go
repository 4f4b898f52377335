// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/staynest/internal/platform/apperr"
	"github.com/taibuivan/staynest/internal/platform/constants"
)

// RedisStateRepository implements [StateRepository] using Redis.
type RedisStateRepository struct {
	client *redis.Client
}

// NewStateRepository creates a new Redis-backed [StateRepository].
func NewStateRepository(client *redis.Client) *RedisStateRepository {
	return &RedisStateRepository{client: client}
}

func stateKey(state string) string {
	return constants.RedisPrefixOAuthState + state
}

// Save stores the provider name under the state token with a TTL.
func (repository *RedisStateRepository) Save(context context.Context, state, provider string, ttl time.Duration) error {
	if err := repository.client.Set(context, stateKey(state), provider, ttl).Err(); err != nil {
		return fmt.Errorf("redis_oauth_state_set_failed: %w", err)
	}
	return nil
}

/*
Consume reads and deletes the state token in one GETDEL round trip.

Returns:
  - string: Provider name the state was issued for
  - error: apperr.NotFound if absent or expired, or connectivity errors
*/
func (repository *RedisStateRepository) Consume(context context.Context, state string) (string, error) {
	provider, err := repository.client.GetDel(context, stateKey(state)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Sign-in state")
		}
		return "", fmt.Errorf("redis_oauth_state_consume_failed: %w", err)
	}
	return provider, nil
}

// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lethanhan/inkpress/internal/platform/apperr"
)

// sessionKeyPrefix namespaces session keys in the shared Redis instance.
const sessionKeyPrefix = "session:"

// # Redis Session Store

// redisSessionRepository implements [SessionRepository] on Redis.
//
// Sessions are keyed by token hash with a TTL matching ExpiresAt, so expiry
// is enforced by the store itself — an expired session simply stops
// existing, no sweeper needed.
type redisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository constructs a Redis backed session store.
func NewRedisSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client}
}

func sessionKey(tokenHash string) string {
	return sessionKeyPrefix + tokenHash
}

// Create stores the session as JSON under its token hash until ExpiresAt.
func (repository *redisSessionRepository) Create(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis: failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redis: session already expired")
	}

	if err := repository.client.Set(ctx, sessionKey(session.TokenHash), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis: failed to store session: %w", err)
	}
	return nil
}

// FindByTokenHash loads a live session. Expired keys have been evicted by
// Redis, so absence covers both unknown and expired tokens.
func (repository *redisSessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error) {
	payload, err := repository.client.Get(ctx, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis: failed to load session: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis: failed to unmarshal session: %w", err)
	}

	// The hash is excluded from the JSON payload; restore it from the key.
	session.TokenHash = tokenHash
	return session, nil
}

// Revoke deletes a session key. Deleting an absent key is a no-op, which
// gives Logout its idempotency.
func (repository *redisSessionRepository) Revoke(ctx context.Context, tokenHash string) error {
	if err := repository.client.Del(ctx, sessionKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("redis: failed to revoke session: %w", err)
	}
	return nil
}

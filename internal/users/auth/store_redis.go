// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
	"github.com/taibuivan/yomira-shelf/internal/platform/constants"
)

// RedisSessionRepository implements [SessionRepository] with expiring Redis keys.
type RedisSessionRepository struct {
	client redis.UniversalClient
}

// NewSessionRepository creates a Redis-backed session store.
func NewSessionRepository(client redis.UniversalClient) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

func (repository *RedisSessionRepository) Create(ctx context.Context, tokenHash string, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	if err := repository.client.Set(ctx, sessionKey(tokenHash), payload, ttl).Err(); err != nil {
		return apperr.Persistence(fmt.Errorf("redis_session_set_failed: %w", err))
	}
	return nil
}

/*
Consume atomically reads and deletes a session with GETDEL.

Returns:
  - error: NOT_FOUND when the token is unknown, expired or already redeemed
*/
func (repository *RedisSessionRepository) Consume(ctx context.Context, tokenHash string) (*Session, error) {
	payload, err := repository.client.GetDel(ctx, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, apperr.Persistence(fmt.Errorf("redis_session_get_failed: %w", err))
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}
	return session, nil
}

func (repository *RedisSessionRepository) Delete(ctx context.Context, tokenHash string) error {
	if err := repository.client.Del(ctx, sessionKey(tokenHash)).Err(); err != nil {
		return apperr.Persistence(fmt.Errorf("redis_session_delete_failed: %w", err))
	}
	return nil
}

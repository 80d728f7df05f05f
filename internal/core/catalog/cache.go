// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomira-shelf/internal/platform/constants"
)

// # Cache Backend

// Cache stores serialized catalog responses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache is the [Cache] backed by Redis.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache wraps a Redis client.
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

func (cache *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := cache.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (cache *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return cache.client.Set(ctx, key, value, ttl).Err()
}

// # Cached Searcher

// CachedSearcher serves repeated catalog queries from a [Cache]. Cache
// failures are logged and fall through to the provider; errors are never cached.
type CachedSearcher struct {
	next   Searcher
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedSearcher decorates next. A non-positive ttl or nil cache disables caching.
func NewCachedSearcher(next Searcher, cache Cache, ttl time.Duration, logger *slog.Logger) Searcher {
	if ttl <= 0 || cache == nil {
		return next
	}
	return &CachedSearcher{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (searcher *CachedSearcher) Search(ctx context.Context, query string, page int) (*SearchResult, error) {
	normalized := NormalizeQuery(query)
	if normalized == "" {
		return searcher.next.Search(ctx, normalized, page)
	}

	key := fmt.Sprintf("%s%s:%d", constants.RedisPrefixCatalogHits, strings.ToLower(normalized), max(page, 1))
	return cached(ctx, searcher, key, func() (*SearchResult, error) {
		return searcher.next.Search(ctx, normalized, page)
	})
}

func (searcher *CachedSearcher) Details(ctx context.Context, catalogID int) (*Candidate, error) {
	key := constants.RedisPrefixCatalogManga + strconv.Itoa(catalogID)
	return cached(ctx, searcher, key, func() (*Candidate, error) {
		return searcher.next.Details(ctx, catalogID)
	})
}

func (searcher *CachedSearcher) Top(ctx context.Context) ([]Candidate, error) {
	top, err := cached(ctx, searcher, constants.RedisKeyCatalogTop, func() (*[]Candidate, error) {
		candidates, err := searcher.next.Top(ctx)
		if err != nil {
			return nil, err
		}
		return &candidates, nil
	})
	if err != nil {
		return nil, err
	}
	return *top, nil
}

// cached reads key, or calls load and stores its result.
func cached[T any](ctx context.Context, searcher *CachedSearcher, key string, load func() (*T, error)) (*T, error) {
	raw, hit, err := searcher.cache.Get(ctx, key)
	if err != nil {
		searcher.logger.Warn("catalog_cache_read_failed", slog.String("key", key), slog.Any("error", err))
	}

	if hit {
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			return &value, nil
		}
		searcher.logger.Warn("catalog_cache_corrupt", slog.String("key", key))
	}

	value, err := load()
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(value)
	if err == nil {
		err = searcher.cache.Set(ctx, key, encoded, searcher.ttl)
	}
	if err != nil {
		searcher.logger.Warn("catalog_cache_write_failed", slog.String("key", key), slog.Any("error", err))
	}

	return value, nil
}

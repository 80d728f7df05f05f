// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-shelf/internal/core/catalog"
	"github.com/taibuivan/yomira-shelf/internal/core/manga"
	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
	"github.com/taibuivan/yomira-shelf/pkg/pointer"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (cache *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	value, ok := cache.entries[key]
	return value, ok, nil
}

func (cache *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.entries[key] = value
	cache.ttls[key] = ttl
	return nil
}

type countingSearcher struct {
	searches int
	details  int
	err      error
}

func (searcher *countingSearcher) Search(_ context.Context, query string, page int) (*catalog.SearchResult, error) {
	searcher.searches++
	if searcher.err != nil {
		return nil, searcher.err
	}
	return &catalog.SearchResult{Items: []catalog.Candidate{{CatalogID: page, Title: query}}}, nil
}

func (searcher *countingSearcher) Details(_ context.Context, catalogID int) (*catalog.Candidate, error) {
	searcher.details++
	if searcher.err != nil {
		return nil, searcher.err
	}
	return &catalog.Candidate{
		CatalogID:    catalogID,
		Title:        "Vagabond",
		TitleEnglish: "Vagabond",
		Volumes:      pointer.To(37),
		Score:        pointer.To(9.2),
	}, nil
}

func (searcher *countingSearcher) Top(context.Context) ([]catalog.Candidate, error) {
	return []catalog.Candidate{{CatalogID: 1}}, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCachedSearcher_ServesRepeatedQueriesFromCache(t *testing.T) {
	ctx := context.Background()
	next := &countingSearcher{}
	cache := newMemoryCache()
	searcher := catalog.NewCachedSearcher(next, cache, time.Minute, discard())

	first, err := searcher.Search(ctx, "Vagabond", 1)
	require.NoError(t, err)
	second, err := searcher.Search(ctx, "  vagabond", 1)
	require.NoError(t, err)

	assert.Equal(t, 1, next.searches)
	assert.Equal(t, first.Items[0].Title, second.Items[0].Title)
	assert.Equal(t, time.Minute, cache.ttls["catalog:search:vagabond:1"])

	_, err = searcher.Search(ctx, "vagabond", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, next.searches)

	top, err := searcher.Top(ctx)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestCachedSearcher_DoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	next := &countingSearcher{err: apperr.SearchUnavailable(errors.New("down"))}
	searcher := catalog.NewCachedSearcher(next, newMemoryCache(), time.Minute, discard())

	for range 2 {
		_, err := searcher.Details(ctx, 9)
		assert.True(t, apperr.HasCode(err, apperr.CodeSearchUnavailable))
	}
	assert.Equal(t, 2, next.details)
}

func TestCachedSearcher_ZeroTTLDisablesCaching(t *testing.T) {
	next := &countingSearcher{}
	searcher := catalog.NewCachedSearcher(next, newMemoryCache(), 0, discard())
	assert.Same(t, next, searcher)
}

func TestShelfLookup_MapsCandidateToAddInput(t *testing.T) {
	lookup := catalog.NewShelfLookup(&countingSearcher{})

	input, err := lookup.Lookup(context.Background(), 656)
	require.NoError(t, err)

	assert.Equal(t, manga.AddInput{
		CatalogID:    656,
		Title:        "Vagabond",
		TitleEnglish: "Vagabond",
		Score:        pointer.To(9.2),
		TotalVolumes: pointer.To(37),
	}, input)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-shelf/internal/api"
	"github.com/taibuivan/yomira-shelf/internal/core/catalog"
	"github.com/taibuivan/yomira-shelf/internal/core/collection"
	"github.com/taibuivan/yomira-shelf/internal/core/manga"
	"github.com/taibuivan/yomira-shelf/internal/core/stats"
	"github.com/taibuivan/yomira-shelf/internal/platform/config"
	"github.com/taibuivan/yomira-shelf/internal/platform/constants"
	"github.com/taibuivan/yomira-shelf/internal/platform/sec"
	"github.com/taibuivan/yomira-shelf/internal/users/auth"
)

const catalogEntry = `{"data": {"mal_id": 25, "title": "Vinland Saga", "title_english": null,
  "images": {"jpg": {"image_url": "https://cdn/vs.jpg"}}, "volumes": 14, "status": "Finished"}}`

func newTestServer(t *testing.T, health api.HealthDependencies) http.Handler {
	t.Helper()

	provider := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		if strings.HasPrefix(request.URL.Path, "/manga/") {
			_, _ = io.WriteString(writer, catalogEntry)
			return
		}
		_, _ = io.WriteString(writer, `{"data": [], "pagination": {"has_next_page": false}}`)
	}))
	t.Cleanup(provider.Close)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := sec.NewTokenServiceFromKeys(key, &key.PublicKey, constants.AuthIssuer)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{ServerPort: "0", Environment: "development"}

	searcher := catalog.NewClient(catalog.ClientConfig{BaseURL: provider.URL, Timeout: time.Second, RateLimit: 100}, logger)

	mangaRepo := manga.NewMemoryRepository()
	collections := collection.NewService(collection.NewMemoryRepository(mangaRepo), logger)
	records := manga.NewService(mangaRepo, collections, logger, manga.WithCatalogLookup(catalog.NewShelfLookup(searcher)))
	authService := auth.NewService(auth.NewMemoryUserRepository(), auth.NewMemorySessionRepository(), tokens, logger)

	liveness, readiness := api.NewHealthHandlers(health, logger)

	server := api.NewServer(t.Context(), cfg, logger, tokens, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService),
		Catalog:    catalog.NewHandler(searcher),
		Collection: collection.NewHandler(collections),
		Manga:      manga.NewHandler(records),
		Stats:      stats.NewHandler(stats.NewService(collections, records, logger)),
	})
	return server.Handler()
}

type client struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func (c *client) do(method, path, body string) (int, map[string]any) {
	c.t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if c.token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+c.token)
	}
	recorder := httptest.NewRecorder()
	c.handler.ServeHTTP(recorder, request)

	var envelope map[string]any
	if recorder.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(recorder.Body.Bytes(), &envelope), recorder.Body.String())
	}
	return recorder.Code, envelope
}

func data(envelope map[string]any) map[string]any {
	return envelope["data"].(map[string]any)
}

/*
TestServer_ShelfFlow signs up, builds a shelf from a catalog id and reads
the aggregates back through the public router.
*/
func TestServer_ShelfFlow(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t, api.HealthDependencies{})}

	status, _ := c.do(http.MethodGet, "/api/v1/collections", "")
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = c.do(http.MethodPost, "/api/v1/auth/signup", `{"email": "reader@yomira.app", "password": "password1"}`)
	require.Equal(t, http.StatusCreated, status)

	status, envelope := c.do(http.MethodPost, "/api/v1/auth/login", `{"email": "reader@yomira.app", "password": "password1"}`)
	require.Equal(t, http.StatusOK, status)
	c.token = data(envelope)["access_token"].(string)

	status, envelope = c.do(http.MethodPost, "/api/v1/collections", `{"name": "Vikings"}`)
	require.Equal(t, http.StatusCreated, status)
	collectionID := data(envelope)["id"].(string)

	status, envelope = c.do(http.MethodPost, "/api/v1/collections/"+collectionID+"/manga", `{"catalog_id": 25}`)
	require.Equal(t, http.StatusCreated, status)
	record := data(envelope)
	assert.Equal(t, "Vinland Saga", record["title"])
	assert.Equal(t, "Vinland Saga", record["title_english"])
	mangaID := record["id"].(string)

	status, _ = c.do(http.MethodPost, "/api/v1/manga/"+mangaID+"/volumes", `{"version": 1, "number": 1, "condition": "sealed", "price": 11.9}`)
	require.Equal(t, http.StatusCreated, status)

	status, _ = c.do(http.MethodPatch, "/api/v1/manga/"+mangaID, `{"version": 2, "rating": 4.74}`)
	require.Equal(t, http.StatusOK, status)

	status, envelope = c.do(http.MethodGet, "/api/v1/collections/"+collectionID+"/stats", "")
	require.Equal(t, http.StatusOK, status)
	summary := data(envelope)
	assert.Equal(t, 1.0, summary["owned_volumes"])
	assert.Equal(t, 14.0, summary["total_volumes"])
	assert.Equal(t, 4.5, summary["average_rating"])
	assert.Equal(t, 11.9, summary["total_cost"])

	status, envelope = c.do(http.MethodGet, "/api/v1/collections", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, envelope["data"].([]any), 1)

	status, envelope = c.do(http.MethodGet, "/api/v1/dashboard", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1.0, data(envelope)["collection_count"])

	status, _ = c.do(http.MethodDelete, "/api/v1/collections/"+collectionID, "")
	require.Equal(t, http.StatusNoContent, status)

	status, _ = c.do(http.MethodGet, "/api/v1/manga/"+mangaID, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestServer_CatalogIsPublic(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t, api.HealthDependencies{})}

	status, envelope := c.do(http.MethodGet, "/api/v1/catalog/search?q=vinland", "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, envelope["data"])

	status, envelope = c.do(http.MethodGet, "/api/v1/catalog/manga/25", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "https://cdn/vs.jpg", data(envelope)["image_url"])
}

func TestServer_HealthProbes(t *testing.T) {
	healthy := &client{t: t, handler: newTestServer(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return nil },
	})}

	status, _ := healthy.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)

	status, envelope := healthy.do(http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", data(envelope)["status"])

	degraded := &client{t: t, handler: newTestServer(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return errors.New("connection refused") },
	})}

	status, envelope = degraded.do(http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "degraded", data(envelope)["status"])
}

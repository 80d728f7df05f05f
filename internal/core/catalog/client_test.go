// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-shelf/internal/core/catalog"
	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
	"github.com/taibuivan/yomira-shelf/pkg/pointer"
)

const onePiecePage = `{
  "pagination": {"has_next_page": true},
  "data": [
    {
      "mal_id": 13,
      "title": "One Piece",
      "title_english": "One Piece",
      "images": {"jpg": {"image_url": "https://cdn/op.jpg", "large_image_url": "https://cdn/op-l.jpg"}},
      "synopsis": "Pirates.",
      "score": 9.22,
      "volumes": null,
      "chapters": null,
      "status": "Publishing",
      "published": {"string": "Jul 22, 1997 to ?"}
    },
    {
      "mal_id": 2,
      "title": "Berserk",
      "title_english": null,
      "images": {"jpg": {"image_url": ""}, "webp": {"large_image_url": "https://cdn/b-l.webp"}},
      "synopsis": null,
      "score": null,
      "volumes": 42,
      "chapters": 380,
      "status": "Publishing",
      "published": {"string": "Aug 25, 1989 to ?"}
    }
  ]
}`

type provider struct {
	server *httptest.Server
	hits   atomic.Int32
	last   atomic.Value
}

func newProvider(t *testing.T, handler func(hit int32, writer http.ResponseWriter, request *http.Request)) *provider {
	t.Helper()
	p := &provider{}
	p.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		hit := p.hits.Add(1)
		p.last.Store(request.URL.RequestURI())
		handler(hit, writer, request)
	}))
	t.Cleanup(p.server.Close)
	return p
}

func (p *provider) client(retries int) *catalog.Client {
	return catalog.NewClient(catalog.ClientConfig{
		BaseURL:          p.server.URL,
		Timeout:          2 * time.Second,
		RateLimit:        1000,
		RateLimitRetries: retries,
		RetryWait:        time.Millisecond,
		RetryMaxWait:     5 * time.Millisecond,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeJSON(writer http.ResponseWriter, status int, body string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_, _ = io.WriteString(writer, body)
}

func TestClient_SearchNormalizesCandidates(t *testing.T) {
	p := newProvider(t, func(_ int32, writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, http.StatusOK, onePiecePage)
	})

	result, err := p.client(0).Search(context.Background(), "  one piece ", 1)
	require.NoError(t, err)

	want := []catalog.Candidate{
		{
			CatalogID:    13,
			Title:        "One Piece",
			TitleEnglish: "One Piece",
			ImageURL:     "https://cdn/op-l.jpg",
			Synopsis:     "Pirates.",
			Score:        pointer.To(9.22),
			Status:       "Publishing",
			Published:    "Jul 22, 1997 to ?",
		},
		{
			CatalogID:    2,
			Title:        "Berserk",
			TitleEnglish: "Berserk",
			ImageURL:     "https://cdn/b-l.webp",
			Volumes:      pointer.To(42),
			Chapters:     pointer.To(380),
			Status:       "Publishing",
			Published:    "Aug 25, 1989 to ?",
		},
	}
	if diff := cmp.Diff(want, result.Items); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, result.Meta.HasNext)
	assert.Equal(t, "/manga?limit=20&page=1&q=one+piece", p.last.Load())
}

func TestClient_EmptyQueryDoesNotCallProvider(t *testing.T) {
	p := newProvider(t, func(_ int32, writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, http.StatusOK, onePiecePage)
	})

	for _, query := range []string{"", "   ", "\t\n"} {
		result, err := p.client(0).Search(context.Background(), query, 1)
		require.NoError(t, err)
		assert.Empty(t, result.Items)
		assert.NotNil(t, result.Items)
	}
	assert.Equal(t, int32(0), p.hits.Load())
}

func TestClient_SearchAppliesNFKC(t *testing.T) {
	p := newProvider(t, func(_ int32, writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, http.StatusOK, `{"data": []}`)
	})

	_, err := p.client(0).Search(context.Background(), "ＮＡＲＵＴＯ", 2)
	require.NoError(t, err)
	assert.Equal(t, "/manga?limit=20&page=2&q=NARUTO", p.last.Load())
}

func TestClient_ServerErrorIsUnavailableWithoutRetry(t *testing.T) {
	p := newProvider(t, func(_ int32, writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, http.StatusInternalServerError, `{}`)
	})

	_, err := p.client(3).Search(context.Background(), "naruto", 1)
	assert.True(t, apperr.HasCode(err, apperr.CodeSearchUnavailable))
	assert.Equal(t, int32(1), p.hits.Load())
}

func TestClient_TransportFailureIsUnavailable(t *testing.T) {
	p := newProvider(t, func(_ int32, writer http.ResponseWriter, _ *http.Request) {})
	client := p.client(3)
	p.server.Close()

	_, err := client.Top(context.Background())
	assert.True(t, apperr.HasCode(err, apperr.CodeSearchUnavailable))
}

func TestClient_RateLimitedResponseIsRetried(t *testing.T) {
	p := newProvider(t, func(hit int32, writer http.ResponseWriter, _ *http.Request) {
		if hit == 1 {
			writer.Header().Set("Retry-After", "0")
			writeJSON(writer, http.StatusTooManyRequests, `{}`)
			return
		}
		writeJSON(writer, http.StatusOK, onePiecePage)
	})

	result, err := p.client(2).Search(context.Background(), "one piece", 1)
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int32(2), p.hits.Load())
}

func TestClient_RateLimitRetriesAreBounded(t *testing.T) {
	p := newProvider(t, func(_ int32, writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, http.StatusTooManyRequests, `{}`)
	})

	_, err := p.client(2).Top(context.Background())
	assert.True(t, apperr.HasCode(err, apperr.CodeSearchUnavailable))
	assert.Equal(t, int32(3), p.hits.Load())
}

func TestClient_Details(t *testing.T) {
	p := newProvider(t, func(_ int32, writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/manga/404" {
			writeJSON(writer, http.StatusNotFound, `{}`)
			return
		}
		writeJSON(writer, http.StatusOK, `{"data": {"mal_id": 7, "title": "Monster", "title_english": "  ", "volumes": 18}}`)
	})
	client := p.client(0)

	candidate, err := client.Details(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Monster", candidate.TitleEnglish)
	assert.Equal(t, 18, *candidate.Volumes)

	_, err = client.Details(context.Background(), 404)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = client.Details(context.Background(), 0)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

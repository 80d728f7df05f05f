// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/time/rate"

	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
	"github.com/taibuivan/yomira-shelf/internal/platform/constants"
	"github.com/taibuivan/yomira-shelf/internal/platform/validate"
	"github.com/taibuivan/yomira-shelf/pkg/pagination"
)

// # Client Configuration

// ClientConfig tunes the provider client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration

	// RateLimit is the outbound request budget per second.
	RateLimit float64

	// RateLimitRetries is how many times a 429 response is retried.
	RateLimitRetries int

	// RetryWait is the floor for the wait between 429 retries; Retry-After raises it.
	RetryWait    time.Duration
	RetryMaxWait time.Duration
}

// Client queries the catalog provider over HTTP.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewClient constructs a provider [Client].
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = time.Second
	}
	if cfg.RetryMaxWait < cfg.RetryWait {
		cfg.RetryMaxWait = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	limiter := rate.NewLimiter(limit, 1)

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", constants.AppName+"/"+constants.AppVersion).
		SetLogger(discardLogger{}).
		SetRetryCount(cfg.RateLimitRetries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryMaxWait).
		SetRetryAfter(retryAfter).
		AddRetryCondition(func(response *resty.Response, err error) bool {
			return err == nil && response != nil && response.StatusCode() == http.StatusTooManyRequests
		})

	// Runs before every attempt, retries included.
	httpClient.OnBeforeRequest(func(_ *resty.Client, request *resty.Request) error {
		return limiter.Wait(request.Context())
	})

	return &Client{http: httpClient, logger: logger}
}

// retryAfter honours a provider Retry-After header given in seconds or as an HTTP date.
// Zero lets resty fall back to its own backoff.
func retryAfter(_ *resty.Client, response *resty.Response) (time.Duration, error) {
	header := response.Header().Get("Retry-After")
	if header == "" {
		return 0, nil
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second, nil
	}
	if at, err := http.ParseTime(header); err == nil {
		return max(time.Until(at), 0), nil
	}
	return 0, nil
}

// NormalizeQuery trims and NFKC-normalizes a title query so that full-width
// and compatibility forms hit the same results and cache entries.
func NormalizeQuery(query string) string {
	return strings.TrimSpace(norm.NFKC.String(query))
}

// # Catalog Queries

/*
Search looks up titles matching query.

Description: A query that is empty after trimming returns an empty page
without calling the provider.

Returns:
  - *SearchResult: at most [constants.CatalogPageSize] candidates
  - error: SEARCH_UNAVAILABLE
*/
func (client *Client) Search(ctx context.Context, query string, page int) (*SearchResult, error) {
	query = NormalizeQuery(query)
	page = max(page, 1)

	if query == "" {
		return &SearchResult{
			Items: []Candidate{},
			Meta:  pagination.NewCursorMeta(page, constants.CatalogPageSize, false),
		}, nil
	}

	var payload jikanList
	err := client.get(ctx, "catalog_search", "/manga", &payload, false, func(request *resty.Request) {
		request.SetQueryParams(map[string]string{
			"q":     query,
			"limit": strconv.Itoa(constants.CatalogPageSize),
			"page":  strconv.Itoa(page),
		})
	})
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Items: normalizeAll(payload.Data),
		Meta:  pagination.NewCursorMeta(page, constants.CatalogPageSize, payload.Pagination.HasNextPage),
	}, nil
}

// Details fetches one catalog entry. An id unknown to the provider is NOT_FOUND.
func (client *Client) Details(ctx context.Context, catalogID int) (*Candidate, error) {
	if catalogID <= 0 {
		return nil, validate.RequiredError("catalog_id", "Must be a positive catalog id")
	}

	var payload jikanSingle
	err := client.get(ctx, "catalog_details", "/manga/{id}", &payload, true, func(request *resty.Request) {
		request.SetPathParam("id", strconv.Itoa(catalogID))
	})
	if err != nil {
		return nil, err
	}

	candidate := normalize(payload.Data)
	return &candidate, nil
}

// Top returns the provider's most popular titles.
func (client *Client) Top(ctx context.Context) ([]Candidate, error) {
	var payload jikanList
	err := client.get(ctx, "catalog_top", "/top/manga", &payload, false, func(request *resty.Request) {
		request.SetQueryParam("limit", strconv.Itoa(constants.CatalogPageSize))
	})
	if err != nil {
		return nil, err
	}
	return normalizeAll(payload.Data), nil
}

// get issues one GET and decodes a successful body into result. With
// missingIsNotFound a provider 404 is reported as NOT_FOUND instead of SEARCH_UNAVAILABLE.
func (client *Client) get(ctx context.Context, action, path string, result any, missingIsNotFound bool, configure func(*resty.Request)) error {
	request := client.http.R().SetContext(ctx).SetResult(result)
	configure(request)

	response, err := request.Get(path)
	if err != nil {
		client.logger.Warn("catalog_request_failed",
			slog.String("action", action),
			slog.Any("error", err),
		)
		return apperr.SearchUnavailable(fmt.Errorf("%s: %w", action, err))
	}

	if missingIsNotFound && response.StatusCode() == http.StatusNotFound {
		return apperr.NotFound("Catalog entry")
	}

	if response.IsError() {
		client.logger.Warn("catalog_request_rejected",
			slog.String("action", action),
			slog.Int("status", response.StatusCode()),
			slog.Int("attempts", response.Request.Attempt),
		)
		return apperr.SearchUnavailable(fmt.Errorf("%s: provider responded %d", action, response.StatusCode()))
	}

	return nil
}

type discardLogger struct{}

func (discardLogger) Errorf(string, ...any) {}
func (discardLogger) Warnf(string, ...any)  {}
func (discardLogger) Debugf(string, ...any) {}

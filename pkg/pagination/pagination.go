// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from Page and Limit.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
//
// HasNext is set for upstream sources (the manga catalog) that only report
// whether another page exists; Total is zero in that case.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// NewMeta constructs pagination metadata from a known total count.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// NewCursorMeta constructs metadata when only "is there a next page" is known.
func NewCursorMeta(page, limit int, hasNext bool) Meta {
	return Meta{Page: page, Limit: limit, HasNext: hasNext}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// Invalid, negative, or excessive values are clamped to the defaults.
func FromRequest(request *http.Request) Params {
	page := parseIntParam(request, "page", DefaultPage)
	limit := parseIntParam(request, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

func parseIntParam(request *http.Request, key string, defaultValue int) int {
	raw := request.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return n
}

// Window slices an in-memory result set according to params.
func Window[T any](items []T, params Params) []T {
	start := min(params.Offset(), len(items))
	end := min(start+params.Limit, len(items))
	return items[start:end]
}

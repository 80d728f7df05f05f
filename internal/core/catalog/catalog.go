// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog is the Catalog Search Client.

It queries a Jikan v4 compatible manga catalog and normalizes each entry into a
[Candidate] used by the Add-to-Collection flow. The catalog is read-only and
unauthenticated. Transport failures and non-success responses surface as
SEARCH_UNAVAILABLE; the only automatic retry is for provider rate limiting.
*/
package catalog

import (
	"context"
	"strings"

	"github.com/taibuivan/yomira-shelf/pkg/pagination"
)

// # Candidates

// Candidate is one normalized catalog entry.
type Candidate struct {
	CatalogID    int      `json:"catalog_id"`
	Title        string   `json:"title"`
	TitleEnglish string   `json:"title_english"`
	ImageURL     string   `json:"image_url"`
	Synopsis     string   `json:"synopsis"`
	Score        *float64 `json:"score"`
	Volumes      *int     `json:"volumes"`
	Chapters     *int     `json:"chapters"`
	Status       string   `json:"status"`
	Published    string   `json:"published"`
}

// SearchResult is one page of candidates.
type SearchResult struct {
	Items []Candidate     `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

// Searcher is the read surface of the catalog. [Client] talks to the provider;
// [CachedSearcher] decorates any Searcher with a response cache.
type Searcher interface {
	Search(ctx context.Context, query string, page int) (*SearchResult, error)
	Details(ctx context.Context, catalogID int) (*Candidate, error)
	Top(ctx context.Context) ([]Candidate, error)
}

// # Provider Payloads

type jikanImage struct {
	ImageURL      string `json:"image_url"`
	LargeImageURL string `json:"large_image_url"`
}

type jikanManga struct {
	MalID        int     `json:"mal_id"`
	Title        string  `json:"title"`
	TitleEnglish *string `json:"title_english"`
	Images       struct {
		JPG  jikanImage `json:"jpg"`
		WebP jikanImage `json:"webp"`
	} `json:"images"`
	Synopsis  *string  `json:"synopsis"`
	Score     *float64 `json:"score"`
	Volumes   *int     `json:"volumes"`
	Chapters  *int     `json:"chapters"`
	Status    string   `json:"status"`
	Published struct {
		String string `json:"string"`
	} `json:"published"`
}

type jikanList struct {
	Data       []jikanManga `json:"data"`
	Pagination struct {
		HasNextPage bool `json:"has_next_page"`
	} `json:"pagination"`
}

type jikanSingle struct {
	Data jikanManga `json:"data"`
}

// # Normalization

// normalize maps a provider entry to a [Candidate]. The English title falls
// back to the title, and the cover follows jpg.large, jpg, webp.large, webp.
func normalize(entry jikanManga) Candidate {
	candidate := Candidate{
		CatalogID:    entry.MalID,
		Title:        strings.TrimSpace(entry.Title),
		TitleEnglish: strings.TrimSpace(entry.Title),
		ImageURL: firstNonEmpty(
			entry.Images.JPG.LargeImageURL,
			entry.Images.JPG.ImageURL,
			entry.Images.WebP.LargeImageURL,
			entry.Images.WebP.ImageURL,
		),
		Score:     entry.Score,
		Volumes:   entry.Volumes,
		Chapters:  entry.Chapters,
		Status:    entry.Status,
		Published: entry.Published.String,
	}

	if entry.TitleEnglish != nil && strings.TrimSpace(*entry.TitleEnglish) != "" {
		candidate.TitleEnglish = strings.TrimSpace(*entry.TitleEnglish)
	}
	if entry.Synopsis != nil {
		candidate.Synopsis = *entry.Synopsis
	}

	return candidate
}

func normalizeAll(entries []jikanManga) []Candidate {
	candidates := make([]Candidate, 0, len(entries))
	for _, entry := range entries {
		candidates = append(candidates, normalize(entry))
	}
	return candidates
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

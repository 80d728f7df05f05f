// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"

	"github.com/taibuivan/yomira-shelf/internal/core/manga"
)

// ShelfLookup hydrates a bare catalog id into the fields of a new manga record.
type ShelfLookup struct {
	searcher Searcher
}

// NewShelfLookup adapts a [Searcher] to [manga.CatalogLookup].
func NewShelfLookup(searcher Searcher) *ShelfLookup {
	return &ShelfLookup{searcher: searcher}
}

func (lookup *ShelfLookup) Lookup(ctx context.Context, catalogID int) (manga.AddInput, error) {
	candidate, err := lookup.searcher.Details(ctx, catalogID)
	if err != nil {
		return manga.AddInput{}, err
	}

	return manga.AddInput{
		CatalogID:    candidate.CatalogID,
		Title:        candidate.Title,
		TitleEnglish: candidate.TitleEnglish,
		ImageURL:     candidate.ImageURL,
		Synopsis:     candidate.Synopsis,
		Chapters:     candidate.Chapters,
		Score:        candidate.Score,
		Status:       candidate.Status,
		Published:    candidate.Published,
		TotalVolumes: candidate.Volumes,
	}, nil
}

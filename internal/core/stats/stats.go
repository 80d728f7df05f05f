// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package stats is the Collection Aggregator.

Every figure is recomputed from the full record set on each read. Nothing is
maintained incrementally, so the aggregates can never drift from the records.

Absent values stay absent: a collection where no record declares its series
length has no total volume count, and a collection with no rated record has no
average. A rating of 0 is a real rating and counts toward the average.
*/
package stats

import (
	"github.com/taibuivan/yomira-shelf/internal/core/collection"
	"github.com/taibuivan/yomira-shelf/internal/core/manga"
)

// # Aggregates

// Stats holds the derived figures of one collection.
type Stats struct {
	MangaCount    int      `json:"manga_count"`
	OwnedVolumes  int      `json:"owned_volumes"`
	TotalVolumes  *int     `json:"total_volumes"`
	AverageRating *float64 `json:"average_rating"`
	RatingLabel   *string  `json:"rating_label"`
	TotalCost     float64  `json:"total_cost"`
}

// CollectionStats is a collection together with its aggregates.
type CollectionStats struct {
	*collection.Collection
	Stats Stats `json:"stats"`
}

// Dashboard sums the aggregates across every collection an owner has.
type Dashboard struct {
	CollectionCount int      `json:"collection_count"`
	MangaCount      int      `json:"manga_count"`
	OwnedVolumes    int      `json:"owned_volumes"`
	TotalCost       float64  `json:"total_cost"`
	AverageRating   *float64 `json:"average_rating"`
}

/*
Compute reduces a record set to its [Stats]. It performs no I/O.

A declared total of zero or less is unknown, matching the ledger's completion
status. The average is labelled only when it lands exactly on a half step.
*/
func Compute(records []*manga.Record) Stats {
	stats := Stats{MangaCount: len(records)}

	var (
		declared    int
		anyDeclared bool
		ratingSum   float64
		rated       int
		cost        float64
	)

	for _, record := range records {
		ledger := record.Ledger()
		stats.OwnedVolumes += ledger.OwnedCount()
		cost += ledger.TotalSpent()

		if record.TotalVolumes != nil && *record.TotalVolumes > 0 {
			declared += *record.TotalVolumes
			anyDeclared = true
		}
		if record.Rating != nil {
			ratingSum += *record.Rating
			rated++
		}
	}

	stats.TotalCost = manga.RoundCents(cost)

	if anyDeclared {
		stats.TotalVolumes = &declared
	}

	if rated > 0 {
		average := ratingSum / float64(rated)
		stats.AverageRating = &average

		if label, ok := manga.RatingLabel(&average); ok {
			stats.RatingLabel = &label
		}
	}

	return stats
}

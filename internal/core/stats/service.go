// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/yomira-shelf/internal/core/collection"
	"github.com/taibuivan/yomira-shelf/internal/core/manga"
)

// # Sources

// CollectionSource reads owner-scoped collections. Implemented by [collection.Service].
type CollectionSource interface {
	Get(ctx context.Context, ownerID, id string) (*collection.Collection, error)
	List(ctx context.Context, ownerID string) ([]*collection.Collection, error)
}

// RecordSource reads owner-scoped manga records. Implemented by [manga.Service].
type RecordSource interface {
	ListByCollection(ctx context.Context, ownerID, collectionID string) ([]*manga.Record, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*manga.Record, error)
}

// # Service Implementation

// Service computes collection aggregates on demand.
type Service struct {
	collections CollectionSource
	records     RecordSource
	logger      *slog.Logger
}

// NewService constructs a new stats [Service].
func NewService(collections CollectionSource, records RecordSource, logger *slog.Logger) *Service {
	return &Service{
		collections: collections,
		records:     records,
		logger:      logger,
	}
}

/*
ComputeStats returns one owned collection with its aggregates.

Description: Collection metadata and its records are fetched concurrently.
A collection owned by someone else is reported as NOT_FOUND.
*/
func (service *Service) ComputeStats(ctx context.Context, ownerID, collectionID string) (*CollectionStats, error) {
	var (
		shelf   *collection.Collection
		records []*manga.Record
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		shelf, err = service.collections.Get(groupCtx, ownerID, collectionID)
		return err
	})

	group.Go(func() error {
		var err error
		records, err = service.records.ListByCollection(groupCtx, ownerID, collectionID)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	stats := Compute(records)
	service.logger.Debug("collection_stats_computed",
		slog.String("collection_id", collectionID),
		slog.Int("manga_count", stats.MangaCount),
	)

	return &CollectionStats{Collection: shelf, Stats: stats}, nil
}

// ListCollectionsWithStats returns every collection of the owner, newest first, each with its aggregates.
func (service *Service) ListCollectionsWithStats(ctx context.Context, ownerID string) ([]CollectionStats, error) {
	shelves, records, err := service.loadAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	byCollection := make(map[string][]*manga.Record, len(shelves))
	for _, record := range records {
		byCollection[record.CollectionID] = append(byCollection[record.CollectionID], record)
	}

	result := make([]CollectionStats, 0, len(shelves))
	for _, shelf := range shelves {
		result = append(result, CollectionStats{
			Collection: shelf,
			Stats:      Compute(byCollection[shelf.ID]),
		})
	}

	return result, nil
}

// Dashboard returns the owner's totals across every collection.
func (service *Service) Dashboard(ctx context.Context, ownerID string) (*Dashboard, error) {
	shelves, records, err := service.loadAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	overall := Compute(records)

	return &Dashboard{
		CollectionCount: len(shelves),
		MangaCount:      overall.MangaCount,
		OwnedVolumes:    overall.OwnedVolumes,
		TotalCost:       overall.TotalCost,
		AverageRating:   overall.AverageRating,
	}, nil
}

// loadAll fetches the owner's collections and records concurrently.
func (service *Service) loadAll(ctx context.Context, ownerID string) ([]*collection.Collection, []*manga.Record, error) {
	var (
		shelves []*collection.Collection
		records []*manga.Record
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		shelves, err = service.collections.List(groupCtx, ownerID)
		return err
	})

	group.Go(func() error {
		var err error
		records, err = service.records.ListByOwner(groupCtx, ownerID)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	return shelves, records, nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
	"github.com/taibuivan/yomira-shelf/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-shelf/internal/platform/validate"
	"github.com/taibuivan/yomira-shelf/pkg/pointer"
	"github.com/taibuivan/yomira-shelf/pkg/uuid"
)

// # Collaborators

// CollectionGuard confirms that a collection exists and belongs to the owner.
type CollectionGuard interface {
	EnsureOwned(ctx context.Context, ownerID, collectionID string) error
}

// CatalogLookup hydrates an [AddInput] from the external catalog by id.
type CatalogLookup interface {
	Lookup(ctx context.Context, catalogID int) (AddInput, error)
}

// # Service Layer

// Service orchestrates manga records and their volume ledgers.
type Service struct {
	repo         Repository
	collections  CollectionGuard
	catalog      CatalogLookup
	logger       *slog.Logger
	ids          uuid.Generator
	storeTimeout time.Duration
}

// Option customises a [Service].
type Option func(*Service)

// WithCatalogLookup enables adding a title by catalog id alone.
func WithCatalogLookup(lookup CatalogLookup) Option {
	return func(service *Service) { service.catalog = lookup }
}

// WithIDGenerator overrides the UUIDv7 generator.
func WithIDGenerator(ids uuid.Generator) Option {
	return func(service *Service) { service.ids = ids }
}

// WithStoreTimeout bounds every repository call.
func WithStoreTimeout(timeout time.Duration) Option {
	return func(service *Service) { service.storeTimeout = timeout }
}

// NewService constructs a new manga [Service].
func NewService(repo Repository, collections CollectionGuard, logger *slog.Logger, options ...Option) *Service {
	service := &Service{
		repo:        repo,
		collections: collections,
		logger:      logger,
		ids:         uuid.V7{},
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// # Record Queries

// Get retrieves a record owned by ownerID, or NOT_FOUND.
func (service *Service) Get(ctx context.Context, ownerID, id string) (*Record, error) {
	ctx, cancel := ctxutil.WithTimeout(ctx, service.storeTimeout)
	defer cancel()

	return service.repo.FindByID(ctx, ownerID, id)
}

// ListByCollection returns the records of an owned collection.
func (service *Service) ListByCollection(ctx context.Context, ownerID, collectionID string) ([]*Record, error) {
	if err := service.collections.EnsureOwned(ctx, ownerID, collectionID); err != nil {
		return nil, err
	}

	ctx, cancel := ctxutil.WithTimeout(ctx, service.storeTimeout)
	defer cancel()

	return service.repo.ListByCollection(ctx, ownerID, collectionID)
}

// ListByOwner returns every record the owner has shelved, newest first.
func (service *Service) ListByOwner(ctx context.Context, ownerID string) ([]*Record, error) {
	ctx, cancel := ctxutil.WithTimeout(ctx, service.storeTimeout)
	defer cancel()

	return service.repo.ListByOwner(ctx, ownerID)
}

// # Record Mutation

/*
AddToCollection places a title into an owned collection.

Description: A bare catalog id is hydrated through [CatalogLookup] when one
is configured. The record starts unrated, with empty notes and no volumes.
The English title falls back to the title.

Returns:
  - *Record: the stored record at version 1
  - error: VALIDATION_ERROR, NOT_FOUND (collection), SEARCH_UNAVAILABLE (hydration)
*/
func (service *Service) AddToCollection(ctx context.Context, ownerID, collectionID string, input AddInput) (*Record, error) {
	if strings.TrimSpace(input.Title) == "" && input.CatalogID > 0 && service.catalog != nil {
		hydrated, err := service.catalog.Lookup(ctx, input.CatalogID)
		if err != nil {
			return nil, err
		}
		input = hydrated
	}

	input.Title = strings.TrimSpace(input.Title)
	input.TitleEnglish = strings.TrimSpace(input.TitleEnglish)

	validator := &validate.Validator{}
	validator.
		Min(FieldCatalogID, input.CatalogID, 1).
		Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, MaxTitleLength)
	if input.TotalVolumes != nil {
		validator.Min(FieldTotalVolumes, *input.TotalVolumes, 0)
	}
	if input.Chapters != nil {
		validator.Min(FieldChapters, *input.Chapters, 0)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.collections.EnsureOwned(ctx, ownerID, collectionID); err != nil {
		return nil, err
	}

	if input.TitleEnglish == "" {
		input.TitleEnglish = input.Title
	}

	record := &Record{
		ID:           service.ids.NewID(),
		CollectionID: collectionID,
		OwnerID:      ownerID,
		CatalogID:    input.CatalogID,
		Title:        input.Title,
		TitleEnglish: input.TitleEnglish,
		ImageURL:     input.ImageURL,
		Synopsis:     input.Synopsis,
		Chapters:     input.Chapters,
		Score:        input.Score,
		Status:       input.Status,
		Published:    input.Published,
		TotalVolumes: input.TotalVolumes,
		Volumes:      []Volume{},
	}

	ctx, cancel := ctxutil.WithTimeout(ctx, service.storeTimeout)
	defer cancel()

	if err := service.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	service.logger.Info("manga_added",
		slog.String("manga_id", record.ID),
		slog.String("collection_id", collectionID),
		slog.Int("catalog_id", record.CatalogID),
	)
	return record, nil
}

/*
UpdateDetails edits rating, notes and declared total volumes.

Description: The rating is normalized to a half step in [0, 5].
ClearRating resets it to unrated and wins over Rating.
*/
func (service *Service) UpdateDetails(ctx context.Context, ownerID, id string, input DetailsInput) (*Record, error) {
	var rating *float64
	validator := &validate.Validator{}

	if input.Rating != nil && !input.ClearRating {
		normalized, err := NormalizeRating(*input.Rating)
		if err != nil {
			return nil, err
		}
		rating = &normalized
	}
	if input.Notes != nil {
		validator.MaxLen(FieldNotes, *input.Notes, MaxNotesLength)
	}
	if input.TotalVolumes != nil {
		validator.Min(FieldTotalVolumes, *input.TotalVolumes, 0)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.mutate(ctx, ownerID, id, input.Version, "manga_details_updated", func(record *Record) error {
		switch {
		case input.ClearRating:
			record.Rating = nil
		case rating != nil:
			record.Rating = rating
		}
		if input.Notes != nil {
			record.Notes = *input.Notes
		}
		if input.TotalVolumes != nil {
			record.TotalVolumes = pointer.To(*input.TotalVolumes)
		}
		return nil
	})
}

// Delete removes an owned record.
func (service *Service) Delete(ctx context.Context, ownerID, id string) error {
	ctx, cancel := ctxutil.WithTimeout(ctx, service.storeTimeout)
	defer cancel()

	if err := service.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	service.logger.Info("manga_deleted", slog.String("manga_id", id))
	return nil
}

// # Volume Ledger

// AddVolume registers a new owned volume on the record.
func (service *Service) AddVolume(ctx context.Context, ownerID, id string, version int, input VolumeInput) (*Record, error) {
	if _, err := ValidateVolume(input); err != nil {
		return nil, err
	}

	return service.mutate(ctx, ownerID, id, version, "volume_added", func(record *Record) error {
		ledger := record.Ledger()
		if err := ledger.Add(input); err != nil {
			return err
		}
		record.Volumes = ledger.Volumes()
		return nil
	})
}

// EditVolume replaces the volume numbered number, possibly renumbering it.
func (service *Service) EditVolume(ctx context.Context, ownerID, id string, version, number int, input VolumeInput) (*Record, error) {
	if _, err := ValidateVolume(input); err != nil {
		return nil, err
	}

	return service.mutate(ctx, ownerID, id, version, "volume_edited", func(record *Record) error {
		ledger := record.Ledger()
		if err := ledger.Edit(number, input); err != nil {
			return err
		}
		record.Volumes = ledger.Volumes()
		return nil
	})
}

// RemoveVolume drops the volume numbered number. An unowned number is NOT_FOUND.
func (service *Service) RemoveVolume(ctx context.Context, ownerID, id string, version, number int) (*Record, error) {
	return service.mutate(ctx, ownerID, id, version, "volume_removed", func(record *Record) error {
		ledger := record.Ledger()
		if err := ledger.Remove(number); err != nil {
			return err
		}
		record.Volumes = ledger.Volumes()
		return nil
	})
}

/*
mutate is the shared read-modify-write path.

Description: It loads the record, rejects a stale version before touching
anything, applies fn to the loaded copy and saves it with a compare-and-swap
on the version. A failure at any step leaves the stored record unchanged.
*/
func (service *Service) mutate(ctx context.Context, ownerID, id string, version int, event string, fn func(*Record) error) (*Record, error) {
	if version < 1 {
		return nil, validate.RequiredError(FieldVersion, "The record version you last read is required")
	}

	ctx, cancel := ctxutil.WithTimeout(ctx, service.storeTimeout)
	defer cancel()

	record, err := service.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if record.Version != version {
		return nil, apperr.VersionConflict(resourceName)
	}

	if err := fn(record); err != nil {
		return nil, err
	}

	if err := service.repo.Save(ctx, record, version); err != nil {
		if apperr.HasCode(err, apperr.CodeVersionConflict) {
			service.logger.Warn("manga_version_conflict",
				slog.String("manga_id", id),
				slog.Int("expected_version", version),
			)
		}
		return nil, err
	}

	service.logger.Info(event,
		slog.String("manga_id", id),
		slog.Int("version", record.Version),
		slog.Int("owned_volumes", len(record.Volumes)),
	)
	return record, nil
}

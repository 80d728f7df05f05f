// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/yomira-shelf/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-shelf/internal/platform/validate"
	"github.com/taibuivan/yomira-shelf/pkg/slug"
	"github.com/taibuivan/yomira-shelf/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for collections.
type Service struct {
	repo         Repository
	logger       *slog.Logger
	ids          uuid.Generator
	storeTimeout time.Duration
}

// Option customises a [Service].
type Option func(*Service)

// WithIDGenerator overrides the UUIDv7 generator.
func WithIDGenerator(ids uuid.Generator) Option {
	return func(service *Service) { service.ids = ids }
}

// WithStoreTimeout bounds every repository call.
func WithStoreTimeout(timeout time.Duration) Option {
	return func(service *Service) { service.storeTimeout = timeout }
}

// NewService constructs a new collection [Service].
func NewService(repo Repository, logger *slog.Logger, options ...Option) *Service {
	service := &Service{
		repo:   repo,
		logger: logger,
		ids:    uuid.V7{},
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// # Collection Queries

// List returns the owner's collections, newest first.
func (service *Service) List(ctx context.Context, ownerID string) ([]*Collection, error) {
	ctx, cancel := ctxutil.WithTimeout(ctx, service.storeTimeout)
	defer cancel()

	return service.repo.ListByOwner(ctx, ownerID)
}

/*
Get retrieves a collection owned by ownerID.

Returns:
  - *Collection: Hydrated entity
  - error: apperr.NotFound when missing or owned by another user
*/
func (service *Service) Get(ctx context.Context, ownerID, id string) (*Collection, error) {
	ctx, cancel := ctxutil.WithTimeout(ctx, service.storeTimeout)
	defer cancel()

	return service.repo.FindByID(ctx, ownerID, id)
}

// EnsureOwned reports NotFound unless ownerID owns collectionID.
func (service *Service) EnsureOwned(ctx context.Context, ownerID, collectionID string) error {
	_, err := service.Get(ctx, ownerID, collectionID)
	return err
}

// # Collection Mutation

/*
Create validates and persists a new collection.

Description: The name is trimmed before validation and a URL slug is derived from it.
*/
func (service *Service) Create(ctx context.Context, ownerID string, input CreateInput) (*Collection, error) {
	name := strings.TrimSpace(input.Name)
	description := ""
	if input.Description != nil {
		description = strings.TrimSpace(*input.Description)
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldName, name).
		MaxLen(FieldName, name, MaxNameLength).
		MaxLen(FieldDescription, description, MaxDescriptionLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	collection := &Collection{
		ID:          service.ids.NewID(),
		OwnerID:     ownerID,
		Name:        name,
		Slug:        slug.From(name),
		Description: description,
	}

	ctx, cancel := ctxutil.WithTimeout(ctx, service.storeTimeout)
	defer cancel()

	if err := service.repo.Create(ctx, collection); err != nil {
		return nil, err
	}

	service.logger.Info("collection_created",
		slog.String("collection_id", collection.ID),
		slog.String("owner_id", ownerID),
	)

	return collection, nil
}

// Update renames and/or re-describes an owned collection.
func (service *Service) Update(ctx context.Context, ownerID, id string, input UpdateInput) (*Collection, error) {
	validator := &validate.Validator{}
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
		validator.Required(FieldName, trimmed).MaxLen(FieldName, trimmed, MaxNameLength)
	}
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		input.Description = &trimmed
		validator.MaxLen(FieldDescription, trimmed, MaxDescriptionLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := ctxutil.WithTimeout(ctx, service.storeTimeout)
	defer cancel()

	collection, err := service.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		collection.Name = *input.Name
		collection.Slug = slug.From(*input.Name)
	}
	if input.Description != nil {
		collection.Description = *input.Description
	}

	if err := service.repo.Update(ctx, collection); err != nil {
		return nil, err
	}

	service.logger.Info("collection_updated", slog.String("collection_id", id))
	return collection, nil
}

// Delete removes an owned collection and cascades to its manga records.
func (service *Service) Delete(ctx context.Context, ownerID, id string) error {
	ctx, cancel := ctxutil.WithTimeout(ctx, service.storeTimeout)
	defer cancel()

	removed, err := service.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}

	service.logger.Info("collection_deleted",
		slog.String("collection_id", id),
		slog.Int("manga_removed", removed),
	)
	return nil
}

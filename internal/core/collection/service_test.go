// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-shelf/internal/core/collection"
	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
	"github.com/taibuivan/yomira-shelf/pkg/pointer"
)

type sequentialIDs struct{ next int }

func (ids *sequentialIDs) NewID() string {
	ids.next++
	return fmt.Sprintf("col-%03d", ids.next)
}

type countingPurger struct {
	purged map[string]int
}

func (purger *countingPurger) PurgeCollection(_, collectionID string) int {
	purger.purged[collectionID]++
	return 2
}

func newService(purgers ...collection.ChildPurger) *collection.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return collection.NewService(
		collection.NewMemoryRepository(purgers...),
		logger,
		collection.WithIDGenerator(&sequentialIDs{}),
	)
}

/*
TestService_Create covers trimming, slugging and validation.
*/
func TestService_Create(t *testing.T) {
	ctx := context.Background()
	service := newService()

	created, err := service.Create(ctx, "owner-a", collection.CreateInput{Name: "  Action Shelf "})
	require.NoError(t, err)
	assert.Equal(t, "col-001", created.ID)
	assert.Equal(t, "Action Shelf", created.Name)
	assert.Equal(t, "action-shelf", created.Slug)
	assert.Equal(t, "owner-a", created.OwnerID)

	tests := []struct {
		name  string
		input collection.CreateInput
	}{
		{"blank_name", collection.CreateInput{Name: "   "}},
		{"long_name", collection.CreateInput{Name: strings.Repeat("x", collection.MaxNameLength+1)}},
		{"long_description", collection.CreateInput{Name: "ok", Description: pointer.To(strings.Repeat("d", collection.MaxDescriptionLength+1))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, "owner-a", tt.input)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		})
	}
}

/*
TestService_ForeignCollectionIsNotFound checks that another owner's collection
looks exactly like a missing one.
*/
func TestService_ForeignCollectionIsNotFound(t *testing.T) {
	ctx := context.Background()
	service := newService()

	created, err := service.Create(ctx, "owner-a", collection.CreateInput{Name: "Private"})
	require.NoError(t, err)

	_, foreignErr := service.Get(ctx, "owner-b", created.ID)
	_, missingErr := service.Get(ctx, "owner-b", "does-not-exist")

	require.Error(t, foreignErr)
	assert.Equal(t, apperr.As(missingErr).Code, apperr.As(foreignErr).Code)
	assert.Equal(t, apperr.As(missingErr).HTTPStatus, apperr.As(foreignErr).HTTPStatus)
	assert.Equal(t, apperr.As(missingErr).Message, apperr.As(foreignErr).Message)

	_, err = service.Update(ctx, "owner-b", created.ID, collection.UpdateInput{Name: pointer.To("Mine now")})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	assert.True(t, apperr.HasCode(service.Delete(ctx, "owner-b", created.ID), apperr.CodeNotFound))
}

func TestService_UpdateAndList(t *testing.T) {
	ctx := context.Background()
	service := newService()

	first, err := service.Create(ctx, "owner-a", collection.CreateInput{Name: "First"})
	require.NoError(t, err)
	_, err = service.Create(ctx, "owner-a", collection.CreateInput{Name: "Second"})
	require.NoError(t, err)
	_, err = service.Create(ctx, "owner-b", collection.CreateInput{Name: "Other"})
	require.NoError(t, err)

	updated, err := service.Update(ctx, "owner-a", first.ID, collection.UpdateInput{
		Name:        pointer.To("Seinen Favourites"),
		Description: pointer.To("Dark stuff"),
	})
	require.NoError(t, err)
	assert.Equal(t, "seinen-favourites", updated.Slug)
	assert.Equal(t, "Dark stuff", updated.Description)

	listed, err := service.List(ctx, "owner-a")
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	_, err = service.Update(ctx, "owner-a", first.ID, collection.UpdateInput{Name: pointer.To(" ")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestService_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	purger := &countingPurger{purged: map[string]int{}}
	service := newService(purger)

	created, err := service.Create(ctx, "owner-a", collection.CreateInput{Name: "Doomed"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, "owner-a", created.ID))
	assert.Equal(t, 1, purger.purged[created.ID])

	assert.True(t, apperr.HasCode(service.EnsureOwned(ctx, "owner-a", created.ID), apperr.CodeNotFound))
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
)

// ChildPurger removes records that live inside a collection. The in-memory
// manga store satisfies it so cascade deletes behave like the Postgres store.
type ChildPurger interface {
	PurgeCollection(ownerID, collectionID string) int
}

// MemoryRepository is a process-local [Repository] backing the handler and service tests.
type MemoryRepository struct {
	mu          sync.RWMutex
	collections map[string]Collection
	purgers     []ChildPurger
	now         func() time.Time
}

// NewMemoryRepository builds an empty store. Purgers run inside Delete.
func NewMemoryRepository(purgers ...ChildPurger) *MemoryRepository {
	return &MemoryRepository{
		collections: make(map[string]Collection),
		purgers:     purgers,
		now:         time.Now,
	}
}

func (repository *MemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*Collection, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	collections := []*Collection{}
	for _, stored := range repository.collections {
		if stored.OwnerID == ownerID {
			copied := stored
			collections = append(collections, &copied)
		}
	}

	sort.SliceStable(collections, func(i, j int) bool {
		if collections[i].CreatedAt.Equal(collections[j].CreatedAt) {
			return collections[i].ID > collections[j].ID
		}
		return collections[i].CreatedAt.After(collections[j].CreatedAt)
	})
	return collections, nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, ownerID, id string) (*Collection, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored, ok := repository.collections[id]
	if !ok || stored.OwnerID != ownerID {
		return nil, apperr.NotFound(resourceName)
	}
	return &stored, nil
}

func (repository *MemoryRepository) Create(_ context.Context, collection *Collection) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.collections[collection.ID]; exists {
		return apperr.Conflict(resourceName + " already exists")
	}

	now := repository.now()
	collection.CreatedAt, collection.UpdatedAt = now, now
	repository.collections[collection.ID] = *collection
	return nil
}

func (repository *MemoryRepository) Update(_ context.Context, collection *Collection) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.collections[collection.ID]
	if !ok || stored.OwnerID != collection.OwnerID {
		return apperr.NotFound(resourceName)
	}

	stored.Name, stored.Slug, stored.Description = collection.Name, collection.Slug, collection.Description
	stored.UpdatedAt = repository.now()
	repository.collections[collection.ID] = stored
	collection.UpdatedAt = stored.UpdatedAt
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, ownerID, id string) (int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.collections[id]
	if !ok || stored.OwnerID != ownerID {
		return 0, apperr.NotFound(resourceName)
	}

	removed := 0
	for _, purger := range repository.purgers {
		removed += purger.PurgeCollection(ownerID, id)
	}
	delete(repository.collections, id)
	return removed, nil
}

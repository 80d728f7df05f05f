// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
	"github.com/taibuivan/yomira-shelf/pkg/pointer"
)

// MemoryRepository is a process-local [Repository] with the same version
// semantics as the Postgres store. Used by tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*Record
	order   map[string]int
	seq     int
	now     func() time.Time
}

// NewMemoryRepository builds an empty store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[string]*Record),
		order:   make(map[string]int),
		now:     time.Now,
	}
}

func cloneRecord(record *Record) *Record {
	copied := *record
	copied.Chapters = pointer.Clone(record.Chapters)
	copied.Score = pointer.Clone(record.Score)
	copied.TotalVolumes = pointer.Clone(record.TotalVolumes)
	copied.Rating = pointer.Clone(record.Rating)
	copied.Volumes = NewLedger(record.Volumes).Volumes()
	return &copied
}

func (repository *MemoryRepository) Create(_ context.Context, record *Record) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.records[record.ID]; exists {
		return apperr.Conflict(resourceName + " already exists")
	}

	now := repository.now()
	record.Version = 1
	record.CreatedAt, record.UpdatedAt = now, now

	repository.seq++
	repository.order[record.ID] = repository.seq
	repository.records[record.ID] = cloneRecord(record)
	return nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, ownerID, id string) (*Record, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored, ok := repository.records[id]
	if !ok || stored.OwnerID != ownerID {
		return nil, apperr.NotFound(resourceName)
	}
	return cloneRecord(stored), nil
}

func (repository *MemoryRepository) list(match func(*Record) bool, newestFirst bool) []*Record {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	records := []*Record{}
	for _, stored := range repository.records {
		if match(stored) {
			records = append(records, cloneRecord(stored))
		}
	}

	sort.Slice(records, func(i, j int) bool {
		before := repository.order[records[i].ID] < repository.order[records[j].ID]
		if newestFirst {
			return !before
		}
		return before
	})
	return records
}

func (repository *MemoryRepository) ListByCollection(_ context.Context, ownerID, collectionID string) ([]*Record, error) {
	return repository.list(func(record *Record) bool {
		return record.OwnerID == ownerID && record.CollectionID == collectionID
	}, false), nil
}

func (repository *MemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*Record, error) {
	return repository.list(func(record *Record) bool {
		return record.OwnerID == ownerID
	}, true), nil
}

func (repository *MemoryRepository) Save(_ context.Context, record *Record, expectedVersion int) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.records[record.ID]
	if !ok || stored.OwnerID != record.OwnerID {
		return apperr.NotFound(resourceName)
	}
	if stored.Version != expectedVersion {
		return apperr.VersionConflict(resourceName)
	}

	updated := cloneRecord(stored)
	updated.Rating = pointer.Clone(record.Rating)
	updated.Notes = record.Notes
	updated.TotalVolumes = pointer.Clone(record.TotalVolumes)
	updated.Volumes = NewLedger(record.Volumes).Volumes()
	updated.Version = stored.Version + 1
	updated.UpdatedAt = repository.now()
	repository.records[record.ID] = updated

	record.Version, record.UpdatedAt = updated.Version, updated.UpdatedAt
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, ownerID, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.records[id]
	if !ok || stored.OwnerID != ownerID {
		return apperr.NotFound(resourceName)
	}
	delete(repository.records, id)
	delete(repository.order, id)
	return nil
}

// PurgeCollection drops every record of a collection and reports how many went.
// It satisfies collection.ChildPurger.
func (repository *MemoryRepository) PurgeCollection(ownerID, collectionID string) int {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	removed := 0
	for id, stored := range repository.records {
		if stored.OwnerID == ownerID && stored.CollectionID == collectionID {
			delete(repository.records, id)
			delete(repository.order, id)
			removed++
		}
	}
	return removed
}

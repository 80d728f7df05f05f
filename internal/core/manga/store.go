// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import "context"

// # Manga Data Access

// Repository defines the persistence contract for manga records.
//
// Reads are scoped by owner; a foreign record is reported as NOT_FOUND.
type Repository interface {

	// Create persists a new record at version 1.
	Create(ctx context.Context, record *Record) error

	/*
		FindByID retrieves one record scoped to its owner.

		Returns:
		  - *Record: Hydrated entity including the volume ledger
		  - error: apperr.NotFound when missing or foreign
	*/
	FindByID(ctx context.Context, ownerID, id string) (*Record, error)

	// ListByCollection returns the records of one collection, oldest first.
	ListByCollection(ctx context.Context, ownerID, collectionID string) ([]*Record, error)

	// ListByOwner returns every record of the owner, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*Record, error)

	/*
		Save writes the mutable fields (rating, notes, declared total, full volume list)
		if the stored version still equals expectedVersion.

		On success record.Version and record.UpdatedAt are refreshed.

		Returns:
		  - error: apperr.VersionConflict on a stale version, apperr.NotFound when missing
	*/
	Save(ctx context.Context, record *Record, expectedVersion int) error

	// Delete removes one owned record.
	Delete(ctx context.Context, ownerID, id string) error
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import "context"

// # Collection Data Access

// Repository defines the persistence contract for collections.
//
// Every read takes the owner id and filters on it; implementations return
// apperr.NotFound for both missing and foreign rows.
type Repository interface {

	/*
		ListByOwner returns the owner's collections, newest first.

		Parameters:
		  - ctx: context.Context
		  - ownerID: string

		Returns:
		  - []*Collection: possibly empty
		  - error: Persistence failures
	*/
	ListByOwner(ctx context.Context, ownerID string) ([]*Collection, error)

	/*
		FindByID retrieves one collection scoped to its owner.

		Returns:
		  - *Collection: Hydrated entity
		  - error: apperr.NotFound when missing or owned by someone else
	*/
	FindByID(ctx context.Context, ownerID, id string) (*Collection, error)

	// Create persists a new collection.
	Create(ctx context.Context, collection *Collection) error

	/*
		Update writes name, slug and description for an owned collection.

		Returns:
		  - error: apperr.NotFound when missing or foreign
	*/
	Update(ctx context.Context, collection *Collection) error

	/*
		Delete removes the collection and every manga record inside it atomically.

		Returns:
		  - int: number of manga records removed with it
		  - error: apperr.NotFound when missing or foreign
	*/
	Delete(ctx context.Context, ownerID, id string) (int, error)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package collection manages the user-defined shelves that group manga records.

# Core Responsibility

  - Ownership: every [Collection] belongs to exactly one owner. Lookups are
    scoped by owner so a foreign collection is indistinguishable from a missing one.
  - Lifecycle: create, rename/describe, delete. Deleting a collection removes
    its manga records in the same transaction.
*/
package collection

import "time"

// # Core Entities

// Collection is a named shelf owned by a single user.
type Collection struct {
	ID          string    `json:"id"` // UUIDv7
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateInput carries the fields accepted when creating a collection.
type CreateInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// UpdateInput carries a partial update. Nil fields are left untouched.
type UpdateInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// # Limits

const (
	MaxNameLength        = 120
	MaxDescriptionLength = 1000
)

// # Field Identifiers

const (
	FieldName        = "name"
	FieldDescription = "description"
)

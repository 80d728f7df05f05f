// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package manga is the Manga Record Store and its embedded Volume Ledger.

# Core Responsibility

  - Records: one [Record] per title on a shelf, owned by one user and placed in one collection.
  - Ledger: the set of owned [Volume] entries, unique by number, with derived spend and completion.
  - Rating: personal scores normalized to half steps in [0, 5] with a fixed label per step.

Every write carries the record version the caller last read. A stale version
is rejected with VERSION_CONFLICT instead of silently overwriting the ledger.
*/
package manga

import (
	"strings"
	"time"
)

// # Manga Enums

// Condition is the physical state of an owned volume.
type Condition string

const (
	ConditionSealed Condition = "sealed"
	ConditionOpened Condition = "opened"
)

// ParseCondition accepts the canonical values plus the legacy Portuguese
// labels still present in imported ledgers ("lacrado", "aberto").
func ParseCondition(raw string) (Condition, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sealed", "lacrado":
		return ConditionSealed, true
	case "opened", "open", "aberto":
		return ConditionOpened, true
	}
	return "", false
}

// CompletionStatus compares owned volumes with the declared series length.
type CompletionStatus string

const (
	CompletionComplete   CompletionStatus = "complete"
	CompletionIncomplete CompletionStatus = "incomplete"
	CompletionUnknown    CompletionStatus = "unknown"
)

// # Core Entities

// Volume is one owned, numbered unit of a series. It has no identity outside its record.
type Volume struct {
	Number    int       `json:"number"`
	Condition Condition `json:"condition"`

	// Price is nil only in legacy data; aggregation treats it as 0.
	Price *float64 `json:"price"`

	// PurchaseDate is YYYY-MM-DD. Nil means the purchase date is unknown.
	PurchaseDate *string `json:"purchase_date"`
}

// Record is one title tracked within a collection.
type Record struct {
	ID           string    `json:"id"` // UUIDv7
	CollectionID string    `json:"collection_id"`
	OwnerID      string    `json:"owner_id"`
	CatalogID    int       `json:"catalog_id"`
	Title        string    `json:"title"`
	TitleEnglish string    `json:"title_english"`
	ImageURL     string    `json:"image_url"`
	Synopsis     string    `json:"synopsis"`
	Chapters     *int      `json:"chapters"`
	Score        *float64  `json:"score"` // community score from the catalog
	Status       string    `json:"status"`
	Published    string    `json:"published"`
	TotalVolumes *int      `json:"total_volumes"` // declared series length, nil when unknown
	Rating       *float64  `json:"rating"`        // personal rating, nil when unrated
	Notes        string    `json:"notes"`
	Volumes      []Volume  `json:"volumes"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Ledger returns a working copy of the record's volume set.
func (record *Record) Ledger() *Ledger {
	return NewLedger(record.Volumes)
}

// # Inputs

// AddInput describes a title being placed into a collection. When only
// CatalogID is set the service hydrates the rest from the catalog.
type AddInput struct {
	CatalogID    int      `json:"catalog_id"`
	Title        string   `json:"title"`
	TitleEnglish string   `json:"title_english"`
	ImageURL     string   `json:"image_url"`
	Synopsis     string   `json:"synopsis"`
	Chapters     *int     `json:"chapters"`
	Score        *float64 `json:"score"`
	Status       string   `json:"status"`
	Published    string   `json:"published"`
	TotalVolumes *int     `json:"total_volumes"`
}

// DetailsInput is a partial update of the personal metadata of a record.
type DetailsInput struct {
	Version      int      `json:"version"`
	Rating       *float64 `json:"rating"`
	ClearRating  bool     `json:"clear_rating"`
	Notes        *string  `json:"notes"`
	TotalVolumes *int     `json:"total_volumes"`
}

// VolumeInput carries the editable fields of a volume.
type VolumeInput struct {
	Number       int      `json:"number"`
	Condition    string   `json:"condition"`
	Price        *float64 `json:"price"`
	PurchaseDate *string  `json:"purchase_date"`
}

// # Limits

const (
	MaxNotesLength = 5000
	MaxTitleLength = 500
)

// # Field Identifiers

const (
	FieldCatalogID    = "catalog_id"
	FieldTitle        = "title"
	FieldTotalVolumes = "total_volumes"
	FieldChapters     = "chapters"
	FieldRating       = "rating"
	FieldNotes        = "notes"
	FieldVersion      = "version"
	FieldNumber       = "number"
	FieldCondition    = "condition"
	FieldPrice        = "price"
	FieldPurchaseDate = "purchase_date"
)
